package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/event"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/payment"
	"github.com/lshigami/coursequiz/internal/repository"
)

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[uint]*model.Course
	nextID  uint
}

func newFakeCourseRepo(courses ...model.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[uint]*model.Course{}}
	for i := range courses {
		c := courses[i]
		r.courses[c.ID] = &c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCourseRepo) Create(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id uint) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, apperror.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) Exists(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.courses[id]
	return ok, nil
}

func (r *fakeCourseRepo) GetText(ctx context.Context, id uint) (string, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return c.PDFText, nil
}

func (r *fakeCourseRepo) FindAllSummaries(_ context.Context) ([]repository.CourseSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.CourseSummary
	for _, c := range r.courses {
		out = append(out, repository.CourseSummary{ID: c.ID, Name: c.Name, TextLength: len([]rune(c.PDFText)), CreatedAt: c.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions []model.Question
	batches   int
}

func (r *fakeQuestionRepo) CreateBatch(_ context.Context, qs []model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
	for i := range qs {
		qs[i].ID = uint(len(r.questions) + 1)
		r.questions = append(r.questions, qs[i])
	}
	return nil
}

func (r *fakeQuestionRepo) FindByCourseAndDifficulty(_ context.Context, courseID uint, d model.Difficulty) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Question
	for _, q := range r.questions {
		if q.CourseID == courseID && q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) byIDs(_ context.Context, ids []uint) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Question
	for _, q := range r.questions {
		for _, id := range ids {
			if q.ID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	mu        sync.Mutex
	quizzes   map[uint]model.Quiz
	questions *fakeQuestionRepo
}

func newFakeQuizRepo(questions *fakeQuestionRepo) *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[uint]model.Quiz{}, questions: questions}
}

func (r *fakeQuizRepo) Create(_ context.Context, q *model.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = uint(len(r.quizzes) + 1)
	q.CreatedAt = time.Now()
	r.quizzes[q.ID] = *q
	return nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	r.mu.Lock()
	q, ok := r.quizzes[id]
	r.mu.Unlock()
	if !ok {
		return nil, apperror.ErrQuizNotFound
	}
	if q.Questions == nil {
		found, _ := r.questions.byIDs(ctx, q.QuestionIDs)
		q.Questions = repository.OrderByIDs(found, q.QuestionIDs)
	}
	return &q, nil
}

type fakeAttemptRepo struct {
	attempts []model.QuizAttempt
}

func (r *fakeAttemptRepo) Create(_ context.Context, a *model.QuizAttempt) error {
	a.ID = uint(len(r.attempts) + 1)
	r.attempts = append(r.attempts, *a)
	return nil
}

func (r *fakeAttemptRepo) FindAllByQuiz(_ context.Context, quizID uint, userID string) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for i := len(r.attempts) - 1; i >= 0; i-- {
		a := r.attempts[i]
		if a.QuizID == quizID && (userID == "" || a.UserID == userID) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTxRepo struct {
	mu  sync.Mutex
	txs map[uint]*model.Transaction
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{txs: map[uint]*model.Transaction{}}
}

func (r *fakeTxRepo) Create(_ context.Context, tx *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = uint(len(r.txs) + 1)
	tx.CreatedAt = time.Now().Add(time.Duration(tx.ID) * time.Second)
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *fakeTxRepo) FindByID(_ context.Context, id uint) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, apperror.ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeTxRepo) FindAll(_ context.Context, userID *uint) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Transaction
	for _, tx := range r.txs {
		if userID != nil && (tx.UserID == nil || *tx.UserID != *userID) {
			continue
		}
		out = append(out, *tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTxRepo) ResolvePending(_ context.Context, id uint, status model.TransactionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.Status != model.TransactionStatusPending {
		return false, nil
	}
	tx.Status = status
	return true, nil
}

type fakeProcessor struct {
	status       string
	createErr    error
	retrieveErr  error
	created      []payment.IntentRequest
	retrieveCall int
}

func (p *fakeProcessor) Name() string { return "fake" }

func (p *fakeProcessor) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.created = append(p.created, req)
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Status: "requires_payment_method"}, nil
}

func (p *fakeProcessor) RetrieveIntent(_ context.Context, id string) (*payment.Intent, error) {
	p.retrieveCall++
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	return &payment.Intent{ID: id, Status: p.status}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}
