package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/model"
	"gorm.io/gorm"
)

// CourseSummary is a course row without its document payload.
type CourseSummary struct {
	ID         uint
	Name       string
	TextLength int
	CreatedAt  time.Time
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uint) (*model.Course, error)
	Exists(ctx context.Context, id uint) (bool, error)
	GetText(ctx context.Context, id uint) (string, error)
	FindAllSummaries(ctx context.Context) ([]CourseSummary, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetText loads only the extracted text column.
func (r *courseRepository) GetText(ctx context.Context, id uint) (string, error) {
	var course model.Course
	err := r.db.WithContext(ctx).Select("id", "pdf_text").First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.ErrCourseNotFound
		}
		return "", err
	}
	return course.PDFText, nil
}

func (r *courseRepository) FindAllSummaries(ctx context.Context) ([]CourseSummary, error) {
	var results []CourseSummary
	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Select("courses.id, courses.name, char_length(courses.pdf_text) as text_length, courses.created_at").
		Where("courses.deleted_at IS NULL").
		Order("courses.created_at DESC").
		Scan(&results).Error
	return results, err
}
