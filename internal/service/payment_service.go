package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lshigami/coursequiz/config"
	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/event"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/payment"
	"github.com/lshigami/coursequiz/internal/repository"
	"github.com/rs/zerolog/log"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	ConfirmPayment(ctx context.Context, paymentID uint) (*dto.ConfirmPaymentResponse, error)
	ListTransactions(ctx context.Context, userID *uint) ([]dto.TransactionDTO, error)
	GetInvoice(ctx context.Context, paymentID uint) (*dto.InvoiceDTO, error)
}

type paymentService struct {
	txRepo     repository.TransactionRepository
	courseRepo repository.CourseRepository
	processor  payment.Processor
	publisher  event.Publisher
	currency   string
}

func NewPaymentService(
	txRepo repository.TransactionRepository,
	courseRepo repository.CourseRepository,
	processor payment.Processor,
	publisher event.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		txRepo:     txRepo,
		courseRepo: courseRepo,
		processor:  processor,
		publisher:  publisher,
		currency:   strings.ToLower(cfg.Payment.Currency),
	}
}

// NewPaymentProcessor selects the processor named by PAYMENT_PROVIDER.
func NewPaymentProcessor(cfg *config.Config) (payment.Processor, error) {
	switch strings.ToLower(cfg.Payment.Provider) {
	case "stripe", "":
		return payment.NewStripeProcessor(cfg.Payment.StripeSecretKey), nil
	case "midtrans":
		if !strings.EqualFold(cfg.Payment.Currency, payment.MidtransCurrency) {
			return nil, fmt.Errorf("midtrans charges in IDR, PAYMENT_CURRENCY is %q", cfg.Payment.Currency)
		}
		if cfg.Payment.MidtransServerKey == "" {
			log.Warn().Msg("MIDTRANS_SERVER_KEY is not set. Payment calls will be rejected by Midtrans.")
		}
		return payment.NewMidtransProcessor(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransProduction), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.Payment.Provider)
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if req.Amount > payment.MaxAmount {
		return nil, apperror.WithMessage(apperror.ErrInvalidAmount, "amount exceeds the maximum allowed")
	}
	if req.Amount <= 0 || payment.ToMinorUnits(req.Amount) <= 0 {
		return nil, apperror.ErrInvalidAmount
	}
	txType := model.TransactionType(strings.TrimSpace(req.Type))
	if txType == "" {
		return nil, apperror.ErrMissingType
	}
	if !txType.Valid() {
		return nil, apperror.ErrInvalidType
	}
	if req.CourseID != nil {
		exists, err := s.courseRepo.Exists(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.ErrCourseNotFound
		}
	}

	metadata := map[string]string{
		"userId":   model.AnonymousUser,
		"type":     string(txType),
		"courseId": "",
	}
	if req.UserID != nil {
		metadata["userId"] = strconv.FormatUint(uint64(*req.UserID), 10)
	}
	target := "general"
	if req.CourseID != nil {
		metadata["courseId"] = strconv.FormatUint(uint64(*req.CourseID), 10)
		target = "course"
	}

	intent, err := s.processor.CreateIntent(ctx, payment.IntentRequest{
		AmountMinor: payment.ToMinorUnits(req.Amount),
		Currency:    s.currency,
		Description: fmt.Sprintf("%s payment for %s", txType, target),
		Metadata:    metadata,
	})
	if err != nil {
		log.Error().Err(err).Str("provider", s.processor.Name()).Float64("amount", req.Amount).Msg("Failed to create payment intent")
		return nil, err
	}

	tx := model.Transaction{
		UserID:           req.UserID,
		CourseID:         req.CourseID,
		Amount:           req.Amount,
		Currency:         s.currency,
		Type:             txType,
		Status:           model.TransactionStatusPending,
		Provider:         s.processor.Name(),
		ExternalIntentID: intent.ID,
		Metadata:         toJSONMap(metadata),
	}
	if err := s.txRepo.Create(ctx, &tx); err != nil {
		log.Error().Err(err).Str("intentID", intent.ID).Msg("Failed to save transaction for created intent")
		return nil, err
	}

	log.Info().Uint("paymentID", tx.ID).Str("intentID", intent.ID).Float64("amount", tx.Amount).
		Str("type", string(txType)).Msg("Payment intent created")
	publishEvent(ctx, s.publisher, event.New(event.TypePaymentCreated, map[string]any{
		"paymentId": tx.ID,
		"amount":    tx.Amount,
		"currency":  tx.Currency,
		"type":      tx.Type,
		"provider":  tx.Provider,
	}))

	return &dto.CreatePaymentResponse{ClientSecret: intent.ClientSecret, PaymentID: tx.ID}, nil
}

// ConfirmPayment reconciles a pending transaction with the processor once.
// A transaction already out of pending is returned as is, without a processor
// call, so repeated confirms report the same terminal status.
func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID uint) (*dto.ConfirmPaymentResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if tx.Status.Terminal() {
		log.Debug().Uint("paymentID", tx.ID).Str("status", string(tx.Status)).Msg("Payment already confirmed")
		return confirmResponse(tx), nil
	}

	intent, err := s.processor.RetrieveIntent(ctx, tx.ExternalIntentID)
	if err != nil {
		log.Error().Err(err).Uint("paymentID", tx.ID).Str("intentID", tx.ExternalIntentID).Msg("Failed to retrieve payment intent")
		return nil, err
	}

	next, err := tx.Status.Resolve(intent.Status == payment.StatusSucceeded)
	if err != nil {
		return nil, err
	}
	updated, err := s.txRepo.ResolvePending(ctx, tx.ID, next)
	if err != nil {
		log.Error().Err(err).Uint("paymentID", tx.ID).Msg("Failed to update transaction status")
		return nil, err
	}
	if !updated {
		// A concurrent confirm resolved it first.
		tx, err = s.txRepo.FindByID(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		return confirmResponse(tx), nil
	}
	tx.Status = next

	log.Info().Uint("paymentID", tx.ID).Str("externalStatus", intent.Status).Str("status", string(next)).Msg("Payment confirmed")
	publishEvent(ctx, s.publisher, event.New(event.TypePaymentConfirmed, map[string]any{
		"paymentId": tx.ID,
		"status":    tx.Status,
		"provider":  tx.Provider,
	}))
	return confirmResponse(tx), nil
}

func (s *paymentService) ListTransactions(ctx context.Context, userID *uint) ([]dto.TransactionDTO, error) {
	txs, err := s.txRepo.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.TransactionDTO, 0, len(txs))
	for i := range txs {
		dtos = append(dtos, toTransactionDTO(&txs[i]))
	}
	return dtos, nil
}

func (s *paymentService) GetInvoice(ctx context.Context, paymentID uint) (*dto.InvoiceDTO, error) {
	tx, err := s.txRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceDTO{
		PaymentID:        tx.ID,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Type:             string(tx.Type),
		Status:           string(tx.Status),
		Date:             tx.CreatedAt,
		ExternalIntentID: tx.ExternalIntentID,
	}, nil
}

func confirmResponse(tx *model.Transaction) *dto.ConfirmPaymentResponse {
	resp := &dto.ConfirmPaymentResponse{
		Succeeded: tx.Status == model.TransactionStatusSuccess,
		Payment:   toTransactionDTO(tx),
	}
	if resp.Succeeded {
		resp.Message = "Payment confirmed successfully"
	} else {
		resp.Message = "Payment failed"
	}
	return resp
}

func toTransactionDTO(tx *model.Transaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:               tx.ID,
		UserID:           tx.UserID,
		CourseID:         tx.CourseID,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Type:             string(tx.Type),
		Status:           string(tx.Status),
		Provider:         tx.Provider,
		ExternalIntentID: tx.ExternalIntentID,
		CreatedAt:        tx.CreatedAt,
	}
}

func toJSONMap(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
