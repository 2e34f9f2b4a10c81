package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/property-ledger/backend/internal/application/usecase/rent"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
)

// PaymentController handles settlement callbacks of the payment processor.
type PaymentController struct {
	recordUseCase  *rent.RecordPaymentUseCase
	failureUseCase *rent.RecordPaymentFailureUseCase
	ledgerUseCase  *rent.GetPaymentLedgerUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	recordUseCase *rent.RecordPaymentUseCase,
	failureUseCase *rent.RecordPaymentFailureUseCase,
	ledgerUseCase *rent.GetPaymentLedgerUseCase,
) *PaymentController {
	return &PaymentController{
		recordUseCase:  recordUseCase,
		failureUseCase: failureUseCase,
		ledgerUseCase:  ledgerUseCase,
	}
}

// Settle handles POST /rent-payments/:id/settlements requests.
// A redelivered settlement answers 200 with recorded=false.
func (c *PaymentController) Settle(ctx *gin.Context) {
	paymentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// Parse request body
	var req dto.RecordSettlementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingParameters),
		})
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), rent.RecordPaymentInput{
		PaymentID:         paymentID,
		Amount:            req.Amount,
		PaidAt:            req.PaidAt,
		Method:            req.Method,
		ExternalReference: req.ExternalReference,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to record settlement")
		return
	}

	status := http.StatusOK
	if output.Recorded {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.SettlementResponse{
		Recorded: output.Recorded,
		Payment:  dto.ToRentPaymentResponse(output.Payment),
	})
}

// Fail handles POST /rent-payments/:id/failures requests.
func (c *PaymentController) Fail(ctx *gin.Context) {
	paymentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.failureUseCase.Execute(ctx.Request.Context(), rent.RecordPaymentFailureInput{
		PaymentID: paymentID,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to record payment failure")
		return
	}

	ctx.JSON(http.StatusOK, dto.PaymentFailureResponse{
		PaymentID: output.PaymentID.String(),
		Marked:    output.Marked,
	})
}

// Ledger handles GET /rent-payments/:id/ledger requests.
func (c *PaymentController) Ledger(ctx *gin.Context) {
	paymentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.ledgerUseCase.Execute(ctx.Request.Context(), rent.GetPaymentLedgerInput{
		PaymentID: paymentID,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to load payment ledger")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentLedgerResponse(output))
}
