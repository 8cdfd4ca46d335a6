package service

import (
	"context"
	"strings"
	"time"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/event"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/repository"
	"github.com/rs/zerolog/log"
)

type ScoringService interface {
	ScoreSubmission(ctx context.Context, quizID uint, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	ListAttempts(ctx context.Context, quizID uint, userID string) ([]dto.AttemptDTO, error)
}

type scoringService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.QuizAttemptRepository
	publisher   event.Publisher
}

func NewScoringService(quizRepo repository.QuizRepository, attemptRepo repository.QuizAttemptRepository, publisher event.Publisher) ScoringService {
	return &scoringService{quizRepo: quizRepo, attemptRepo: attemptRepo, publisher: publisher}
}

// ScoreAnswers counts the bound questions whose first submitted answer equals
// the stored correct answer exactly. Unmatched questions score zero and
// answers for unknown question ids are ignored.
func ScoreAnswers(questions []model.Question, answers []model.SubmittedAnswer) int {
	first := make(map[uint]string, len(answers))
	for _, a := range answers {
		if _, seen := first[a.QuestionID]; !seen {
			first[a.QuestionID] = a.SelectedAnswer
		}
	}
	score := 0
	for _, q := range questions {
		if selected, ok := first[q.ID]; ok && selected == q.CorrectAnswer {
			score++
		}
	}
	return score
}

func (s *scoringService) ScoreSubmission(ctx context.Context, quizID uint, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if len(req.Answers) == 0 {
		return nil, apperror.ErrEmptySubmission
	}
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	answers := make([]model.SubmittedAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = model.SubmittedAnswer{QuestionID: a.QuestionID, SelectedAnswer: a.SelectedAnswer}
	}

	userID := model.AnonymousUser
	if req.UserID != nil && strings.TrimSpace(*req.UserID) != "" {
		userID = strings.TrimSpace(*req.UserID)
	}

	score := ScoreAnswers(quiz.Questions, answers)
	attempt := model.QuizAttempt{
		QuizID:      quiz.ID,
		UserID:      userID,
		Answers:     answers,
		Score:       score,
		CompletedAt: time.Now(),
	}
	if err := s.attemptRepo.Create(ctx, &attempt); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to save quiz attempt")
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("quizID", quizID).Str("userID", userID).
		Int("score", score).Int("total", len(quiz.Questions)).Msg("Quiz submission scored")
	publishEvent(ctx, s.publisher, event.New(event.TypeQuizSubmitted, map[string]any{
		"attemptId": attempt.ID,
		"quizId":    quiz.ID,
		"userId":    userID,
		"score":     score,
		"total":     len(quiz.Questions),
	}))

	return &dto.SubmitQuizResponse{AttemptID: attempt.ID, Score: score, Total: len(quiz.Questions)}, nil
}

// ListAttempts returns the quiz's attempts newest first, optionally for one
// taker only.
func (s *scoringService) ListAttempts(ctx context.Context, quizID uint, userID string) ([]dto.AttemptDTO, error) {
	if _, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.FindAllByQuiz(ctx, quizID, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.AttemptDTO, 0, len(attempts))
	for _, a := range attempts {
		item := dto.AttemptDTO{
			ID:          a.ID,
			QuizID:      a.QuizID,
			UserID:      a.UserID,
			Answers:     make([]dto.SubmittedAnswerDTO, len(a.Answers)),
			Score:       a.Score,
			CompletedAt: a.CompletedAt,
		}
		for i, ans := range a.Answers {
			item.Answers[i] = dto.SubmittedAnswerDTO{QuestionID: ans.QuestionID, SelectedAnswer: ans.SelectedAnswer}
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}
