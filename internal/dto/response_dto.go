package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

type CourseUploadResponse struct {
	CourseID uint `json:"course_id"`
}

type CourseSummaryDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	TextLength int       `json:"text_length"`
	CreatedAt  time.Time `json:"created_at"`
}
