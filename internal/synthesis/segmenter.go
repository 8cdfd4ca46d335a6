// Package synthesis turns raw course text into multiple-choice questions.
package synthesis

import (
	"strings"
	"unicode/utf8"

	"github.com/lshigami/coursequiz/internal/apperror"
)

const (
	sentenceTerminator = "."
	// MinSentenceLength is exclusive: a fragment must be longer than this
	// many characters after trimming to become a candidate.
	MinSentenceLength = 20
)

// Segment splits text on '.' and returns the trimmed fragments longer than
// MinSentenceLength, in document order.
func Segment(text string) ([]string, error) {
	if text == "" {
		return nil, apperror.ErrEmptyText
	}

	var sentences []string
	for _, fragment := range strings.Split(text, sentenceTerminator) {
		trimmed := strings.TrimSpace(fragment)
		if utf8.RuneCountInString(trimmed) <= MinSentenceLength {
			continue
		}
		sentences = append(sentences, trimmed)
	}

	if len(sentences) == 0 {
		return nil, apperror.ErrNoCandidates
	}
	return sentences, nil
}
