package payment

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog/log"
)

// MidtransCurrency is the only currency Snap charges in.
const MidtransCurrency = "idr"

// MidtransProcessor maps intents onto Snap transactions. The intent id is the
// Snap order id and the client secret is the Snap token.
type MidtransProcessor struct {
	snap       snap.Client
	core       coreapi.Client
	newOrderID func() string
}

func NewMidtransProcessor(serverKey string, production bool) *MidtransProcessor {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	p := &MidtransProcessor{newOrderID: func() string { return "cq-" + uuid.NewString() }}
	p.snap.New(serverKey, env)
	p.core.New(serverKey, env)
	return p
}

func (p *MidtransProcessor) Name() string { return "midtrans" }

// CreateIntent sends whole rupiah. Amounts with a fractional part or in any
// other currency are rejected so the stored transaction matches the charge.
func (p *MidtransProcessor) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	if !strings.EqualFold(req.Currency, MidtransCurrency) {
		return nil, apperror.WithMessage(apperror.ErrUnsupportedCurrency, "midtrans only charges in IDR")
	}
	if req.AmountMinor <= 0 {
		return nil, apperror.ErrInvalidAmount
	}
	if req.AmountMinor%100 != 0 {
		return nil, apperror.WithMessage(apperror.ErrInvalidAmount, "amount must be a whole number of rupiah")
	}
	gross := req.AmountMinor / 100
	orderID := p.newOrderID()

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    orderID,
				Price: gross,
				Qty:   1,
				Name:  truncate(req.Description, 50),
			},
		},
		CustomField1: truncate(req.Metadata["type"], 255),
		CustomField2: truncate(req.Metadata["userId"], 255),
		CustomField3: truncate(req.Metadata["courseId"], 255),
	}

	resp, merr := p.snap.CreateTransaction(snapReq)
	if merr != nil {
		log.Error().Err(merr).Str("orderID", orderID).Msg("Midtrans: failed to create snap transaction")
		return nil, apperror.Wrap(apperror.ErrExternalService, merr)
	}
	if resp == nil || resp.Token == "" {
		return nil, apperror.Wrap(apperror.ErrExternalService, errors.New("midtrans returned no snap token"))
	}
	return &Intent{ID: orderID, ClientSecret: resp.Token, Status: "pending"}, nil
}

func (p *MidtransProcessor) RetrieveIntent(_ context.Context, id string) (*Intent, error) {
	resp, merr := p.core.CheckTransaction(id)
	if merr != nil {
		// Midtrans answers 404 until the customer starts paying.
		if merr.StatusCode == http.StatusNotFound {
			return &Intent{ID: id, Status: "not_found"}, nil
		}
		log.Error().Err(merr).Str("orderID", id).Msg("Midtrans: failed to check transaction")
		return nil, apperror.Wrap(apperror.ErrExternalService, merr)
	}
	if resp == nil {
		return nil, apperror.Wrap(apperror.ErrExternalService, errors.New("midtrans returned no transaction status"))
	}
	return &Intent{ID: id, Status: midtransStatus(resp.TransactionStatus, resp.FraudStatus)}, nil
}

func midtransStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "settlement":
		return StatusSucceeded
	case "capture":
		if fraudStatus == "" || fraudStatus == "accept" {
			return StatusSucceeded
		}
	}
	return transactionStatus
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
