// Package payment talks to external payment processors.
package payment

import (
	"context"
	"math"
)

// StatusSucceeded is the only processor status that settles a transaction.
const StatusSucceeded = "succeeded"

type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Description string
	Metadata    map[string]string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Processor is an external authority for payment intents. Errors returned by
// implementations wrap apperror.ErrExternalService.
type Processor interface {
	Name() string
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}

// MaxAmount is the largest major-unit amount accepted for an intent. It keeps
// ToMinorUnits inside the int64 range on every platform.
const MaxAmount = 1_000_000_000_000

// ToMinorUnits converts a major-unit amount (dollars) to cents. Callers bound
// amount by MaxAmount first.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
