package dto

import "time"

type GenerateQuizResponse struct {
	QuizID        uint `json:"quiz_id"`
	QuestionCount int  `json:"question_count"`
}

// QuizQuestionDTO is what a taker sees; the correct answer is withheld.
type QuizQuestionDTO struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

type QuizResponseDTO struct {
	ID         uint              `json:"id"`
	CourseID   uint              `json:"course_id"`
	Difficulty string            `json:"difficulty"`
	Questions  []QuizQuestionDTO `json:"questions"`
	CreatedAt  time.Time         `json:"created_at"`
}

type SubmitQuizResponse struct {
	AttemptID uint `json:"attempt_id"`
	Score     int  `json:"score"`
	Total     int  `json:"total"`
}

type AttemptDTO struct {
	ID          uint                 `json:"id"`
	QuizID      uint                 `json:"quiz_id"`
	UserID      string               `json:"user_id"`
	Answers     []SubmittedAnswerDTO `json:"answers"`
	Score       int                  `json:"score"`
	CompletedAt time.Time            `json:"completed_at"`
}
