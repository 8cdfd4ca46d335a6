package repository

import (
	"context"

	"github.com/lshigami/coursequiz/internal/model"
	"gorm.io/gorm"
)

type QuizAttemptRepository interface {
	Create(ctx context.Context, attempt *model.QuizAttempt) error
	FindAllByQuiz(ctx context.Context, quizID uint, userID string) ([]model.QuizAttempt, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *quizAttemptRepository) FindAllByQuiz(ctx context.Context, quizID uint, userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	query := r.db.WithContext(ctx).Where("quiz_id = ?", quizID)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Order("completed_at DESC").Order("id DESC").Find(&attempts).Error
	return attempts, err
}
