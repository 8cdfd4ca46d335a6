package repository

import (
	"context"
	"errors"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

// FindByIDWithQuestions loads the quiz and its bound questions in the order
// they were bound. Questions missing from the bank are left out.
func (r *quizRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrQuizNotFound
		}
		return nil, err
	}
	if len(quiz.QuestionIDs) == 0 {
		return &quiz, nil
	}

	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("id IN ?", []uint(quiz.QuestionIDs)).Find(&questions).Error; err != nil {
		return nil, err
	}
	quiz.Questions = OrderByIDs(questions, quiz.QuestionIDs)
	return &quiz, nil
}

// OrderByIDs arranges questions to follow ids.
func OrderByIDs(questions []model.Question, ids []uint) []model.Question {
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered
}
