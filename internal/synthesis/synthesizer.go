package synthesis

import (
	"fmt"
	"strings"

	"github.com/lshigami/coursequiz/internal/model"
)

const (
	OptionCount = 4

	fillerSecond = "Option B"
	fillerThird  = "Option C"
	fixedFourth  = "Option D"
)

// Synthesizer builds one multiple-choice question per candidate sentence.
// Output is intentionally random; inject a RandomSource to pin it down.
type Synthesizer struct {
	rnd RandomSource
}

func NewSynthesizer(rnd RandomSource) *Synthesizer {
	if rnd == nil {
		rnd = DefaultSource()
	}
	return &Synthesizer{rnd: rnd}
}

func Prompt(sentence string) string {
	return fmt.Sprintf("What is described by: \"%s\"?", sentence)
}

// Synthesize returns false when the sentence has no tokens; callers skip it.
func (s *Synthesizer) Synthesize(sentence string, courseID uint, difficulty model.Difficulty) (model.Question, bool) {
	tokens := strings.Fields(sentence)
	if len(tokens) == 0 {
		return model.Question{}, false
	}

	correct := tokens[s.rnd.Intn(len(tokens))]
	options := []string{
		correct,
		s.draw(tokens, fillerSecond),
		s.draw(tokens, fillerThird),
		fixedFourth,
	}
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return model.Question{
		CourseID:      courseID,
		Difficulty:    difficulty,
		QuestionText:  Prompt(sentence),
		Options:       options,
		CorrectAnswer: correct,
	}, true
}

// draw picks a uniform token. The filler is only reachable with an empty
// pool, which Synthesize already rules out.
func (s *Synthesizer) draw(tokens []string, filler string) string {
	if len(tokens) == 0 {
		return filler
	}
	return tokens[s.rnd.Intn(len(tokens))]
}

// SynthesizeAll runs Synthesize over at most limit sentences from the front
// of the list and reports how many were skipped for having no tokens.
func (s *Synthesizer) SynthesizeAll(sentences []string, limit int, courseID uint, difficulty model.Difficulty) (questions []model.Question, skipped int) {
	if limit > 0 && len(sentences) > limit {
		sentences = sentences[:limit]
	}
	for _, sentence := range sentences {
		q, ok := s.Synthesize(sentence, courseID, difficulty)
		if !ok {
			skipped++
			continue
		}
		questions = append(questions, q)
	}
	return questions, skipped
}
