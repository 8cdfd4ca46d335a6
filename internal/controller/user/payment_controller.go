package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/coursequiz/internal/controller"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/service"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreatePayment godoc
// @Summary (User) Start a payment
// @Description Creates a payment intent at the configured processor and records a pending transaction. Amount is in major currency units.
// @Tags User - Payments
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Amount, type (one-time or subscription), optional course and user"
// @Success 201 {object} dto.CreatePaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or type"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 502 {object} dto.ErrorResponse "Payment processor error"
// @Router /payments/create [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "CreatePayment", err)
		return
	}
	resp, err := c.paymentService.CreatePayment(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "CreatePayment", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ConfirmPayment godoc
// @Summary (User) Confirm a payment
// @Description Reconciles a pending transaction with the processor once. A payment the processor did not settle is reported with status 400 and the failed record.
// @Tags User - Payments
// @Accept json
// @Produce json
// @Param request body dto.ConfirmPaymentRequest true "Payment ID"
// @Success 200 {object} dto.ConfirmPaymentResponse "Payment succeeded"
// @Failure 400 {object} dto.ConfirmPaymentResponse "Payment failed"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 502 {object} dto.ErrorResponse "Payment processor error"
// @Router /payments/confirm [post]
func (c *PaymentController) ConfirmPayment(ctx *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "ConfirmPayment", err)
		return
	}
	resp, err := c.paymentService.ConfirmPayment(ctx.Request.Context(), req.PaymentID)
	if err != nil {
		controller.RespondError(ctx, "ConfirmPayment", err)
		return
	}
	if !resp.Succeeded {
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetPaymentHistory godoc
// @Summary (User) List payments
// @Description Newest first. Filtered to one user when user_id is given.
// @Tags User - Payments
// @Produce json
// @Param user_id query int false "User ID"
// @Success 200 {array} dto.TransactionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Router /payments/history [get]
func (c *PaymentController) GetPaymentHistory(ctx *gin.Context) {
	var userID *uint
	if raw := ctx.Query("user_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid User ID format in query", Code: "invalid_input"})
			return
		}
		uID := uint(val)
		userID = &uID
	}
	history, err := c.paymentService.ListTransactions(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, "GetPaymentHistory", err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// GetInvoice godoc
// @Summary (User) Get an invoice
// @Tags User - Payments
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} dto.InvoiceDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Payment ID format"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Router /payments/invoice/{payment_id} [get]
func (c *PaymentController) GetInvoice(ctx *gin.Context) {
	paymentID, ok := controller.ParseIDParam(ctx, "payment_id")
	if !ok {
		return
	}
	invoice, err := c.paymentService.GetInvoice(ctx.Request.Context(), paymentID)
	if err != nil {
		controller.RespondError(ctx, "GetInvoice", err)
		return
	}
	ctx.JSON(http.StatusOK, invoice)
}
