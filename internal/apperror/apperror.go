package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
	KindSynthesisFailed Kind = "synthesis_failed"
	KindExternalService Kind = "external_service_error"
	KindInternal        Kind = "internal"
)

// Error is a classified failure. Two Errors match under errors.Is when their
// codes are equal, so wrapped sentinels keep their identity.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Err: cause}
}

// WithMessage returns a copy of sentinel with a more specific message.
func WithMessage(sentinel *Error, message string) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: message}
}

var (
	ErrInvalidInput        = New(KindInvalidInput, "invalid_input", "invalid input")
	ErrEmptyText           = New(KindInvalidInput, "empty_text", "document text is empty")
	ErrInvalidDifficulty   = New(KindInvalidInput, "invalid_difficulty", "difficulty must be one of easy, medium, hard")
	ErrEmptySubmission     = New(KindInvalidInput, "empty_submission", "answers are required")
	ErrInvalidAmount       = New(KindInvalidInput, "invalid_amount", "amount must be greater than zero")
	ErrMissingType         = New(KindInvalidInput, "missing_type", "payment type is required")
	ErrInvalidType         = New(KindInvalidInput, "invalid_type", "payment type must be one-time or subscription")
	ErrUnsupportedCurrency = New(KindInvalidInput, "unsupported_currency", "currency is not supported by the payment provider")

	ErrCourseNotFound      = New(KindNotFound, "course_not_found", "course not found")
	ErrQuizNotFound        = New(KindNotFound, "quiz_not_found", "quiz not found")
	ErrTransactionNotFound = New(KindNotFound, "transaction_not_found", "payment not found")
	ErrDocumentNotFound    = New(KindNotFound, "document_not_found", "course document not found")

	ErrNoCandidates          = New(KindSynthesisFailed, "no_candidates", "no valid sentences found in document text")
	ErrSynthesisFailed       = New(KindSynthesisFailed, "synthesis_failed", "no questions generated")
	ErrInsufficientQuestions = New(KindSynthesisFailed, "insufficient_questions", "no questions available for quiz")

	ErrExternalService = New(KindExternalService, "external_service_error", "payment processor error")
)

// KindOf reports the classification of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindSynthesisFailed:
		return http.StatusUnprocessableEntity
	case KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
