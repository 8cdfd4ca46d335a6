package dto

import "time"

type CreatePaymentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    uint   `json:"payment_id"`
}

type TransactionDTO struct {
	ID               uint      `json:"id"`
	UserID           *uint     `json:"user_id,omitempty"`
	CourseID         *uint     `json:"course_id,omitempty"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Provider         string    `json:"provider"`
	ExternalIntentID string    `json:"external_intent_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// ConfirmPaymentResponse reports the reconciled transaction. Succeeded is
// false when the processor did not settle the payment.
type ConfirmPaymentResponse struct {
	Message   string         `json:"message"`
	Succeeded bool           `json:"succeeded"`
	Payment   TransactionDTO `json:"payment"`
}

type InvoiceDTO struct {
	PaymentID        uint      `json:"payment_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Date             time.Time `json:"date"`
	ExternalIntentID string    `json:"external_intent_id"`
}
