package dto

// GenerateQuizRequest asks for a quiz over one course at one difficulty.
type GenerateQuizRequest struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required,difficulty"`
}

// SubmittedAnswerDTO is one selected option for one question.
type SubmittedAnswerDTO struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// SubmitQuizRequest carries a taker's answers. UserID is optional; anonymous
// submissions are recorded as "anonymous".
type SubmitQuizRequest struct {
	UserID  *string              `json:"user_id"`
	Answers []SubmittedAnswerDTO `json:"answers"`
}

// CreatePaymentRequest starts a payment. Amount is in major currency units.
type CreatePaymentRequest struct {
	UserID   *uint   `json:"user_id"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	CourseID *uint   `json:"course_id"`
}

type ConfirmPaymentRequest struct {
	PaymentID uint `json:"payment_id" binding:"required"`
}
