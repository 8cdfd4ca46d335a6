package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/repository"
	"github.com/lshigami/coursequiz/internal/storage"
	"github.com/rs/zerolog/log"
)

type CourseService interface {
	Upload(ctx context.Context, name, filename string, raw []byte) (*dto.CourseUploadResponse, error)
	ListCourses(ctx context.Context) ([]dto.CourseSummaryDTO, error)
	GetDocument(ctx context.Context, courseID uint) (*CourseDocument, error)
}

// CourseDocument is the raw PDF originally uploaded for a course.
type CourseDocument struct {
	Filename string
	Content  []byte
}

type courseService struct {
	courseRepo repository.CourseRepository
	extractor  TextExtractor
	store      storage.DocumentStore
}

func NewCourseService(courseRepo repository.CourseRepository, extractor TextExtractor, store storage.DocumentStore) CourseService {
	return &courseService{courseRepo: courseRepo, extractor: extractor, store: store}
}

func (s *courseService) Upload(ctx context.Context, name, filename string, raw []byte) (*dto.CourseUploadResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.WithMessage(apperror.ErrInvalidInput, "course name is required")
	}
	if len(raw) == 0 {
		return nil, apperror.WithMessage(apperror.ErrInvalidInput, "pdf file is required")
	}

	text, err := s.extractor.Extract(ctx, raw)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to extract course text")
		return nil, apperror.Wrap(apperror.WithMessage(apperror.ErrInvalidInput, "could not read text from the uploaded PDF"), err)
	}
	if text == "" {
		log.Warn().Str("filename", filename).Msg("Uploaded course has no extractable text, quiz generation will fail for it")
	}

	course := model.Course{Name: name, PDFText: text}
	if s.store.Enabled() {
		key := fmt.Sprintf("courses/%s%s", uuid.NewString(), strings.ToLower(path.Ext(filename)))
		if _, err := s.store.Put(ctx, key, raw, "application/pdf"); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to store course document")
			return nil, fmt.Errorf("failed to store course document: %w", err)
		}
		course.PDFObjectKey = &key
	} else {
		course.PDF = raw
	}

	if err := s.courseRepo.Create(ctx, &course); err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to create course")
		return nil, err
	}
	log.Info().Uint("courseID", course.ID).Int("textLength", len([]rune(text))).Msg("Course uploaded")
	return &dto.CourseUploadResponse{CourseID: course.ID}, nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]dto.CourseSummaryDTO, error) {
	summaries, err := s.courseRepo.FindAllSummaries(ctx)
	if err != nil {
		return nil, err
	}
	var dtos []dto.CourseSummaryDTO
	if err := copier.Copy(&dtos, &summaries); err != nil {
		return nil, fmt.Errorf("failed to map courses: %w", err)
	}
	if dtos == nil {
		dtos = []dto.CourseSummaryDTO{}
	}
	return dtos, nil
}

// GetDocument returns the uploaded PDF from object storage or, for courses
// stored inline, from the course row.
func (s *courseService) GetDocument(ctx context.Context, courseID uint) (*CourseDocument, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	doc := &CourseDocument{Filename: fmt.Sprintf("course-%d.pdf", course.ID)}

	switch {
	case course.PDFObjectKey != nil:
		raw, err := s.store.Get(ctx, *course.PDFObjectKey)
		if err != nil {
			log.Error().Err(err).Uint("courseID", course.ID).Str("key", *course.PDFObjectKey).Msg("Failed to load course document")
			return nil, fmt.Errorf("failed to load course document: %w", err)
		}
		doc.Content = raw
	case len(course.PDF) > 0:
		doc.Content = course.PDF
	}
	if len(doc.Content) == 0 {
		return nil, apperror.ErrDocumentNotFound
	}
	return doc, nil
}
