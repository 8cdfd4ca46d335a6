package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

type TransactionType string

const (
	TransactionTypeOneTime      TransactionType = "one-time"
	TransactionTypeSubscription TransactionType = "subscription"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeOneTime || t == TransactionTypeSubscription
}

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

var ErrTransitionNotAllowed = errors.New("transaction is already in a terminal state")

func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed
}

// Resolve is the only transition function: pending moves to success when the
// processor reports success and to failed otherwise. Terminal states stay put.
func (s TransactionStatus) Resolve(externalSucceeded bool) (TransactionStatus, error) {
	if s != TransactionStatusPending {
		return s, ErrTransitionNotAllowed
	}
	if externalSucceeded {
		return TransactionStatusSuccess, nil
	}
	return TransactionStatusFailed, nil
}

// Transaction is a local record of one payment intent at the processor.
type Transaction struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	UserID           *uint             `json:"user_id,omitempty" gorm:"index"`
	CourseID         *uint             `json:"course_id,omitempty"`
	Amount           float64           `json:"amount" gorm:"not null"`
	Currency         string            `json:"currency" gorm:"type:varchar(8);not null"`
	Type             TransactionType   `json:"type" gorm:"type:varchar(16);not null"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	Provider         string            `json:"provider" gorm:"type:varchar(16);not null"`
	ExternalIntentID string            `json:"external_intent_id" gorm:"not null;uniqueIndex"`
	Metadata         datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt        time.Time         `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
