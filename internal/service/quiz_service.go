package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/event"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/repository"
	"github.com/lshigami/coursequiz/internal/synthesis"
	"github.com/rs/zerolog/log"
)

// QuizSize is the maximum number of questions bound into one quiz, and the
// bank size below which generation tops the bank up.
const QuizSize = 10

type QuizService interface {
	SynthesizeQuiz(ctx context.Context, courseID uint, difficulty model.Difficulty) (*model.Quiz, error)
	GetQuiz(ctx context.Context, quizID uint) (*dto.QuizResponseDTO, error)
}

type quizService struct {
	courseRepo   repository.CourseRepository
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
	synthesizer  *synthesis.Synthesizer
	locker       GenerationLocker
	publisher    event.Publisher
}

func NewQuizService(
	courseRepo repository.CourseRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
	synthesizer *synthesis.Synthesizer,
	locker GenerationLocker,
	publisher event.Publisher,
) QuizService {
	return &quizService{
		courseRepo:   courseRepo,
		questionRepo: questionRepo,
		quizRepo:     quizRepo,
		synthesizer:  synthesizer,
		locker:       locker,
		publisher:    publisher,
	}
}

func (s *quizService) SynthesizeQuiz(ctx context.Context, courseID uint, difficulty model.Difficulty) (*model.Quiz, error) {
	if !difficulty.Valid() {
		return nil, apperror.ErrInvalidDifficulty
	}
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrCourseNotFound
	}

	questions, err := s.questionRepo.FindByCourseAndDifficulty(ctx, courseID, difficulty)
	if err != nil {
		return nil, err
	}
	if len(questions) < QuizSize {
		questions, err = s.topUpBank(ctx, courseID, difficulty)
		if err != nil {
			return nil, err
		}
	}

	if len(questions) > QuizSize {
		questions = questions[:QuizSize]
	}
	if len(questions) == 0 {
		return nil, apperror.ErrInsufficientQuestions
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	quiz := model.Quiz{CourseID: courseID, Difficulty: difficulty, QuestionIDs: ids}
	if err := s.quizRepo.Create(ctx, &quiz); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to create quiz")
		return nil, err
	}
	quiz.Questions = questions

	log.Info().Uint("quizID", quiz.ID).Uint("courseID", courseID).Str("difficulty", string(difficulty)).
		Int("questions", len(ids)).Msg("Quiz generated")
	publishEvent(ctx, s.publisher, event.New(event.TypeQuizGenerated, map[string]any{
		"quizId":        quiz.ID,
		"courseId":      courseID,
		"difficulty":    difficulty,
		"questionCount": len(ids),
	}))
	return &quiz, nil
}

// topUpBank synthesizes new questions under the generation lock and returns
// the re-queried bank. A caller that waited on the lock sees the questions the
// holder inserted and skips synthesis.
func (s *quizService) topUpBank(ctx context.Context, courseID uint, difficulty model.Difficulty) ([]model.Question, error) {
	unlock, err := s.locker.Lock(ctx, GenerationKey(courseID, difficulty))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	defer unlock()

	questions, err := s.questionRepo.FindByCourseAndDifficulty(ctx, courseID, difficulty)
	if err != nil {
		return nil, err
	}
	if len(questions) >= QuizSize {
		return questions, nil
	}

	text, err := s.courseRepo.GetText(ctx, courseID)
	if err != nil {
		return nil, err
	}
	sentences, err := synthesis.Segment(text)
	if err != nil {
		log.Warn().Err(err).Uint("courseID", courseID).Msg("Course text yielded no candidate sentences")
		return nil, err
	}

	generated, skipped := s.synthesizer.SynthesizeAll(sentences, QuizSize, courseID, difficulty)
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Uint("courseID", courseID).Msg("Skipped sentences without tokens")
	}
	if len(generated) == 0 {
		return nil, apperror.ErrSynthesisFailed
	}
	if err := s.questionRepo.CreateBatch(ctx, generated); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to persist generated questions")
		return nil, err
	}
	log.Info().Int("generated", len(generated)).Uint("courseID", courseID).Str("difficulty", string(difficulty)).
		Msg("Question bank topped up")

	return s.questionRepo.FindByCourseAndDifficulty(ctx, courseID, difficulty)
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uint) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	resp := &dto.QuizResponseDTO{
		ID:         quiz.ID,
		CourseID:   quiz.CourseID,
		Difficulty: string(quiz.Difficulty),
		Questions:  make([]dto.QuizQuestionDTO, 0, len(quiz.Questions)),
		CreatedAt:  quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, dto.QuizQuestionDTO{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      append([]string(nil), q.Options...),
		})
	}
	return resp, nil
}

// publishEvent is best-effort: a broker outage never fails the operation
// that produced the event.
func publishEvent(ctx context.Context, publisher event.Publisher, ev event.Event) {
	if err := publisher.Publish(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("event", ev.Type).Msg("Failed to publish event")
	}
}
