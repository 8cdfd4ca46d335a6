package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/model"
)

type stubExtractor struct {
	text string
	err  error
}

func (e stubExtractor) Extract(context.Context, []byte) (string, error) { return e.text, e.err }

type memoryStore struct {
	objects map[string][]byte
}

func (s *memoryStore) Enabled() bool { return s != nil }

func (s *memoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.objects[key] = data
	return key, nil
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	return s.objects[key], nil
}

type offStore struct{}

func (offStore) Enabled() bool { return false }
func (offStore) Put(context.Context, string, []byte, string) (string, error) {
	return "", errors.New("off")
}
func (offStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("off") }

func TestUploadStoresInlineWithoutObjectStorage(t *testing.T) {
	courses := newFakeCourseRepo()
	svc := NewCourseService(courses, stubExtractor{text: "Go has goroutines and channels."}, offStore{})

	resp, err := svc.Upload(context.Background(), "  Go basics ", "intro.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	c, _ := courses.FindByID(context.Background(), resp.CourseID)
	if c.Name != "Go basics" || string(c.PDF) != "%PDF-1.4" || c.PDFObjectKey != nil {
		t.Errorf("course = %+v", c)
	}
	if c.PDFText != "Go has goroutines and channels." {
		t.Errorf("text = %q", c.PDFText)
	}
}

func TestUploadStoresInObjectStorage(t *testing.T) {
	courses := newFakeCourseRepo()
	store := &memoryStore{objects: map[string][]byte{}}
	svc := NewCourseService(courses, stubExtractor{text: "text"}, store)

	resp, err := svc.Upload(context.Background(), "Go", "Intro.PDF", []byte("raw"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	c, _ := courses.FindByID(context.Background(), resp.CourseID)
	if c.PDFObjectKey == nil || !strings.HasPrefix(*c.PDFObjectKey, "courses/") || !strings.HasSuffix(*c.PDFObjectKey, ".pdf") {
		t.Fatalf("object key = %v", c.PDFObjectKey)
	}
	if c.PDF != nil {
		t.Errorf("raw bytes should not be stored inline")
	}
	if string(store.objects[*c.PDFObjectKey]) != "raw" {
		t.Errorf("stored object mismatch")
	}
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name      string
		course    string
		raw       []byte
		extractor TextExtractor
	}{
		{"missing name", "", []byte("x"), stubExtractor{text: "t"}},
		{"missing file", "Go", nil, stubExtractor{text: "t"}},
		{"unreadable pdf", "Go", []byte("x"), stubExtractor{err: errors.New("malformed")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := newFakeCourseRepo()
			svc := NewCourseService(courses, tt.extractor, offStore{})
			_, err := svc.Upload(context.Background(), tt.course, "f.pdf", tt.raw)
			if !errors.Is(err, apperror.ErrInvalidInput) {
				t.Fatalf("err = %v, want invalid input", err)
			}
			if len(courses.courses) != 0 {
				t.Errorf("no course should be persisted")
			}
		})
	}
}

func TestListCourses(t *testing.T) {
	courses := newFakeCourseRepo()
	svc := NewCourseService(courses, stubExtractor{text: "héllo"}, offStore{})

	empty, err := svc.ListCourses(context.Background())
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("ListCourses() = %v, %v; want empty non-nil", empty, err)
	}

	if _, err := svc.Upload(context.Background(), "Go", "a.pdf", []byte("x")); err != nil {
		t.Fatal(err)
	}
	list, err := svc.ListCourses(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Go" || list[0].TextLength != 5 {
		t.Errorf("list = %+v", list)
	}
}

func TestChainTextExtractorFallsBack(t *testing.T) {
	chain := NewChainTextExtractor(stubExtractor{text: ""}, nil, stubExtractor{text: "from fallback"})
	got, err := chain.Extract(context.Background(), []byte("x"))
	if err != nil || got != "from fallback" {
		t.Errorf("Extract() = %q, %v", got, err)
	}

	chain = NewChainTextExtractor(stubExtractor{err: errors.New("bad pdf")})
	if _, err := chain.Extract(context.Background(), []byte("x")); err == nil {
		t.Error("expected the last extractor error")
	}
}

func TestGetDocument(t *testing.T) {
	ctx := context.Background()
	key := "courses/abc.pdf"
	store := &memoryStore{objects: map[string][]byte{key: []byte("%PDF-stored")}}
	missingKey := "courses/gone.pdf"
	courses := newFakeCourseRepo(
		model.Course{ID: 1, Name: "inline", PDF: []byte("%PDF-inline")},
		model.Course{ID: 2, Name: "stored", PDFObjectKey: &key},
		model.Course{ID: 3, Name: "empty"},
		model.Course{ID: 4, Name: "missing object", PDFObjectKey: &missingKey},
	)
	svc := NewCourseService(courses, stubExtractor{}, store)

	tests := []struct {
		name    string
		id      uint
		want    string
		wantErr error
	}{
		{"inline bytes", 1, "%PDF-inline", nil},
		{"object storage", 2, "%PDF-stored", nil},
		{"no document", 3, "", apperror.ErrDocumentNotFound},
		{"object missing", 4, "", apperror.ErrDocumentNotFound},
		{"unknown course", 9, "", apperror.ErrCourseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := svc.GetDocument(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDocument() error = %v", err)
			}
			if string(doc.Content) != tt.want || doc.Filename != fmt.Sprintf("course-%d.pdf", tt.id) {
				t.Errorf("document = %q %q", doc.Filename, doc.Content)
			}
		})
	}
}

func TestGetDocumentStorageFailure(t *testing.T) {
	key := "courses/abc.pdf"
	courses := newFakeCourseRepo(model.Course{ID: 1, Name: "stored", PDFObjectKey: &key})
	svc := NewCourseService(courses, stubExtractor{}, offStore{})

	_, err := svc.GetDocument(context.Background(), 1)
	if err == nil || apperror.KindOf(err) != apperror.KindInternal {
		t.Errorf("err = %v, want an unclassified storage error", err)
	}
}
