package model

import (
	"time"

	"gorm.io/datatypes"
)

const AnonymousUser = "anonymous"

type SubmittedAnswer struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// QuizAttempt is immutable once created; every submission produces a new row.
type QuizAttempt struct {
	ID          uint                                 `gorm:"primarykey" json:"id"`
	QuizID      uint                                 `json:"quiz_id" gorm:"not null;index"`
	UserID      string                               `json:"user_id" gorm:"not null;index"`
	Answers     datatypes.JSONSlice[SubmittedAnswer] `json:"answers"`
	Score       int                                  `json:"score" gorm:"not null"`
	CompletedAt time.Time                            `json:"completed_at" gorm:"not null"`
}
