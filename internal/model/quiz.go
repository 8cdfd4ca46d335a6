package model

import (
	"time"

	"gorm.io/datatypes"
)

// Quiz binds an ordered list of bank questions for one course and difficulty.
// Questions is filled by the repository in QuestionIDs order and is not a column.
type Quiz struct {
	ID          uint                      `gorm:"primarykey" json:"id"`
	CourseID    uint                      `json:"course_id" gorm:"not null;index"`
	Difficulty  Difficulty                `json:"difficulty" gorm:"type:varchar(16);not null"`
	QuestionIDs datatypes.JSONSlice[uint] `json:"question_ids" gorm:"not null"`
	Questions   []Question                `json:"questions,omitempty" gorm:"-"`
	CreatedAt   time.Time                 `json:"created_at"`
}
