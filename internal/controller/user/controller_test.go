package user

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

type stubQuizService struct {
	gotCourse     uint
	gotDifficulty model.Difficulty
	err           error
}

func (s *stubQuizService) SynthesizeQuiz(_ context.Context, courseID uint, d model.Difficulty) (*model.Quiz, error) {
	s.gotCourse, s.gotDifficulty = courseID, d
	if s.err != nil {
		return nil, s.err
	}
	return &model.Quiz{ID: 5, CourseID: courseID, Difficulty: d, QuestionIDs: []uint{1, 2, 3}}, nil
}

func (s *stubQuizService) GetQuiz(_ context.Context, id uint) (*dto.QuizResponseDTO, error) {
	if id != 5 {
		return nil, apperror.ErrQuizNotFound
	}
	return &dto.QuizResponseDTO{ID: 5, Questions: []dto.QuizQuestionDTO{{ID: 1, QuestionText: "q", Options: []string{"a", "b", "c", "Option D"}}}}, nil
}

type stubScoringService struct {
	got dto.SubmitQuizRequest
}

func (s *stubScoringService) ScoreSubmission(_ context.Context, quizID uint, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	s.got = req
	if len(req.Answers) == 0 {
		return nil, apperror.ErrEmptySubmission
	}
	return &dto.SubmitQuizResponse{AttemptID: 1, Score: 1, Total: 3}, nil
}

func (s *stubScoringService) ListAttempts(_ context.Context, quizID uint, userID string) ([]dto.AttemptDTO, error) {
	if quizID != 5 {
		return nil, apperror.ErrQuizNotFound
	}
	return []dto.AttemptDTO{{ID: 1, QuizID: 5, UserID: userID, Score: 2}}, nil
}

type stubPaymentService struct {
	confirm   *dto.ConfirmPaymentResponse
	gotUserID *uint
	createErr error
}

func (s *stubPaymentService) CreatePayment(_ context.Context, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.CreatePaymentResponse{ClientSecret: "secret", PaymentID: 1}, nil
}

func (s *stubPaymentService) ConfirmPayment(_ context.Context, id uint) (*dto.ConfirmPaymentResponse, error) {
	if id != 1 {
		return nil, apperror.ErrTransactionNotFound
	}
	return s.confirm, nil
}

func (s *stubPaymentService) ListTransactions(_ context.Context, userID *uint) ([]dto.TransactionDTO, error) {
	s.gotUserID = userID
	return []dto.TransactionDTO{}, nil
}

func (s *stubPaymentService) GetInvoice(_ context.Context, id uint) (*dto.InvoiceDTO, error) {
	return &dto.InvoiceDTO{PaymentID: id, Amount: 25, Status: "success"}, nil
}

func newRouter(q *QuizController, p *PaymentController) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/quizzes/generate", q.GenerateQuiz)
	api.GET("/quizzes/:quiz_id", q.GetQuiz)
	api.POST("/quizzes/:quiz_id/submit", q.SubmitQuiz)
	api.GET("/quizzes/:quiz_id/attempts", q.ListAttempts)
	api.POST("/payments/create", p.CreatePayment)
	api.POST("/payments/confirm", p.ConfirmPayment)
	api.GET("/payments/history", p.GetPaymentHistory)
	api.GET("/payments/invoice/:payment_id", p.GetInvoice)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
