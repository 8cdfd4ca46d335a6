package model

import (
	"time"

	"gorm.io/datatypes"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is one bank item. It is append-only: nothing edits a question after
// insert. CorrectAnswer is always one of Options.
type Question struct {
	ID            uint                        `gorm:"primarykey" json:"id"`
	CourseID      uint                        `json:"course_id" gorm:"not null;index:idx_question_bank,priority:1"`
	Difficulty    Difficulty                  `json:"difficulty" gorm:"type:varchar(16);not null;index:idx_question_bank,priority:2"`
	QuestionText  string                      `json:"question_text" gorm:"type:text;not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectAnswer string                      `json:"correct_answer" gorm:"type:text;not null"`
	CreatedAt     time.Time                   `json:"created_at"`
}
