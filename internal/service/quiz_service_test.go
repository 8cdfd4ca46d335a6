package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/event"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/synthesis"
)

func courseText(sentences int) string {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&sb, "Sentence number %d talks about distributed systems. ", i+1)
	}
	return sb.String()
}

type quizFixture struct {
	courses   *fakeCourseRepo
	questions *fakeQuestionRepo
	quizzes   *fakeQuizRepo
	publisher *recordingPublisher
	svc       QuizService
}

func newQuizFixture(courses ...model.Course) *quizFixture {
	f := &quizFixture{
		courses:   newFakeCourseRepo(courses...),
		questions: &fakeQuestionRepo{},
		publisher: &recordingPublisher{},
	}
	f.quizzes = newFakeQuizRepo(f.questions)
	f.svc = NewQuizService(f.courses, f.questions, f.quizzes, synthesis.NewSynthesizer(nil), NewKeyedMutexLocker(), f.publisher)
	return f
}

func TestSynthesizeQuizGeneratesAndCaps(t *testing.T) {
	f := newQuizFixture(model.Course{ID: 1, Name: "Systems", PDFText: courseText(14)})

	quiz, err := f.svc.SynthesizeQuiz(context.Background(), 1, model.DifficultyEasy)
	if err != nil {
		t.Fatalf("SynthesizeQuiz() error = %v", err)
	}
	if len(quiz.QuestionIDs) != QuizSize {
		t.Fatalf("quiz has %d questions, want %d", len(quiz.QuestionIDs), QuizSize)
	}
	for _, q := range quiz.Questions {
		if q.CourseID != 1 || q.Difficulty != model.DifficultyEasy {
			t.Errorf("question %d bound to (%d, %s), want (1, easy)", q.ID, q.CourseID, q.Difficulty)
		}
		if len(q.Options) != synthesis.OptionCount {
			t.Errorf("question %d has %d options", q.ID, len(q.Options))
		}
	}
	if got := f.publisher.types(); len(got) != 1 || got[0] != event.TypeQuizGenerated {
		t.Errorf("published %v, want [%s]", got, event.TypeQuizGenerated)
	}

	// A full bank is reused without generating again.
	if _, err := f.svc.SynthesizeQuiz(context.Background(), 1, model.DifficultyEasy); err != nil {
		t.Fatalf("second SynthesizeQuiz() error = %v", err)
	}
	if f.questions.batches != 1 {
		t.Errorf("bank generated %d times, want 1", f.questions.batches)
	}
}

func TestSynthesizeQuizToleratesFewerThanTen(t *testing.T) {
	f := newQuizFixture(model.Course{ID: 1, PDFText: courseText(3)})

	quiz, err := f.svc.SynthesizeQuiz(context.Background(), 1, model.DifficultyHard)
	if err != nil {
		t.Fatalf("SynthesizeQuiz() error = %v", err)
	}
	if len(quiz.QuestionIDs) != 3 {
		t.Errorf("quiz has %d questions, want 3", len(quiz.QuestionIDs))
	}
}

func TestSynthesizeQuizDifficultiesAreSeparateBanks(t *testing.T) {
	f := newQuizFixture(model.Course{ID: 1, PDFText: courseText(12)})
	ctx := context.Background()

	if _, err := f.svc.SynthesizeQuiz(ctx, 1, model.DifficultyEasy); err != nil {
		t.Fatal(err)
	}
	quiz, err := f.svc.SynthesizeQuiz(ctx, 1, model.DifficultyMedium)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range quiz.Questions {
		if q.Difficulty != model.DifficultyMedium {
			t.Errorf("medium quiz bound a %s question", q.Difficulty)
		}
	}
	if f.questions.batches != 2 {
		t.Errorf("batches = %d, want 2", f.questions.batches)
	}
}

func TestSynthesizeQuizErrors(t *testing.T) {
	tests := []struct {
		name       string
		course     model.Course
		courseID   uint
		difficulty model.Difficulty
		want       error
		kind       apperror.Kind
	}{
		{"unknown course", model.Course{ID: 1, PDFText: courseText(5)}, 2, model.DifficultyEasy, apperror.ErrCourseNotFound, apperror.KindNotFound},
		{"invalid difficulty", model.Course{ID: 1, PDFText: courseText(5)}, 1, "extreme", apperror.ErrInvalidDifficulty, apperror.KindInvalidInput},
		{"empty text", model.Course{ID: 1}, 1, model.DifficultyEasy, apperror.ErrEmptyText, apperror.KindInvalidInput},
		{"no candidates", model.Course{ID: 1, PDFText: "Too short. Also short."}, 1, model.DifficultyEasy, apperror.ErrNoCandidates, apperror.KindSynthesisFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizFixture(tt.course)
			_, err := f.svc.SynthesizeQuiz(context.Background(), tt.courseID, tt.difficulty)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if apperror.KindOf(err) != tt.kind {
				t.Errorf("kind = %s, want %s", apperror.KindOf(err), tt.kind)
			}
			if len(f.publisher.types()) != 0 {
				t.Errorf("no event expected on failure")
			}
		})
	}
}

func TestSynthesizeQuizConcurrentGenerationTopsUpOnce(t *testing.T) {
	f := newQuizFixture(model.Course{ID: 1, PDFText: courseText(12)})

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.SynthesizeQuiz(context.Background(), 1, model.DifficultyEasy); err != nil {
				t.Errorf("SynthesizeQuiz() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if f.questions.batches != 1 {
		t.Errorf("bank generated %d times, want 1", f.questions.batches)
	}
	bank, _ := f.questions.FindByCourseAndDifficulty(context.Background(), 1, model.DifficultyEasy)
	if len(bank) != QuizSize {
		t.Errorf("bank size = %d, want %d", len(bank), QuizSize)
	}
}

func TestGetQuizKeepsBoundOrder(t *testing.T) {
	f := newQuizFixture(model.Course{ID: 1, PDFText: courseText(10)})
	ctx := context.Background()

	quiz, err := f.svc.SynthesizeQuiz(ctx, 1, model.DifficultyEasy)
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.svc.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz() error = %v", err)
	}
	if len(got.Questions) != len(quiz.QuestionIDs) {
		t.Fatalf("got %d questions, want %d", len(got.Questions), len(quiz.QuestionIDs))
	}
	for i, q := range got.Questions {
		if q.ID != quiz.QuestionIDs[i] {
			t.Errorf("question %d id = %d, want %d", i, q.ID, quiz.QuestionIDs[i])
		}
	}

	if _, err := f.svc.GetQuiz(ctx, 99); !errors.Is(err, apperror.ErrQuizNotFound) {
		t.Errorf("GetQuiz(99) err = %v, want quiz not found", err)
	}
}
