package repository

import (
	"context"

	"github.com/lshigami/coursequiz/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository is the question bank. Questions are never updated or
// deleted once inserted.
type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []model.Question) error
	FindByCourseAndDifficulty(ctx context.Context, courseID uint, difficulty model.Difficulty) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

// FindByCourseAndDifficulty returns the bank in insertion order.
func (r *questionRepository) FindByCourseAndDifficulty(ctx context.Context, courseID uint, difficulty model.Difficulty) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND difficulty = ?", courseID, difficulty).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}
