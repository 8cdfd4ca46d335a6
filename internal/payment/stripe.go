package payment

import (
	"context"
	"errors"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProcessor struct {
	api *client.API
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	if secretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set. Stripe calls will be rejected by the API.")
	}
	return newStripeProcessor(secretKey, nil)
}

// newStripeProcessor uses the default Stripe backends when backends is nil.
func newStripeProcessor(secretKey string, backends *stripe.Backends) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeProcessor{api: api}
}

func (p *StripeProcessor) Name() string { return "stripe" }

func (p *StripeProcessor) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountMinor),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Description:        stripe.String(req.Description),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		log.Error().Err(err).Int64("amountMinor", req.AmountMinor).Msg("Stripe: failed to create payment intent")
		return nil, apperror.Wrap(apperror.ErrExternalService, err)
	}
	if pi == nil || pi.ID == "" || pi.ClientSecret == "" {
		return nil, apperror.Wrap(apperror.ErrExternalService, errors.New("stripe returned an incomplete payment intent"))
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (p *StripeProcessor) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		log.Error().Err(err).Str("intentID", id).Msg("Stripe: failed to retrieve payment intent")
		return nil, apperror.Wrap(apperror.ErrExternalService, err)
	}
	if pi == nil {
		return nil, apperror.Wrap(apperror.ErrExternalService, errors.New("stripe returned no payment intent"))
	}

	status := string(pi.Status)
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		status = StatusSucceeded
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: status}, nil
}
