package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/usecase/rent"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
)

// RentController handles rent calculation endpoints.
type RentController struct {
	prorateUseCase   *rent.CalculateProratedRentUseCase
	chargesUseCase   *rent.CalculateMonthlyChargesUseCase
	increaseUseCase  *rent.ApplyRentIncreaseUseCase
	recurringUseCase *rent.GenerateRecurringPaymentsUseCase
	discountUseCase  *rent.ApplyEarlyPaymentDiscountUseCase
}

// NewRentController creates a new rent controller instance.
func NewRentController(
	prorateUseCase *rent.CalculateProratedRentUseCase,
	chargesUseCase *rent.CalculateMonthlyChargesUseCase,
	increaseUseCase *rent.ApplyRentIncreaseUseCase,
	recurringUseCase *rent.GenerateRecurringPaymentsUseCase,
	discountUseCase *rent.ApplyEarlyPaymentDiscountUseCase,
) *RentController {
	return &RentController{
		prorateUseCase:   prorateUseCase,
		chargesUseCase:   chargesUseCase,
		increaseUseCase:  increaseUseCase,
		recurringUseCase: recurringUseCase,
		discountUseCase:  discountUseCase,
	}
}

// Prorate handles GET /rent/prorate requests.
func (c *RentController) Prorate(ctx *gin.Context) {
	monthlyRent, ok := parseAmountQuery(ctx, "monthlyRent", domainerror.ErrCodeInvalidMonthlyRent)
	if !ok {
		return
	}
	moveIn, ok := parseDateQuery(ctx, "moveIn", true)
	if !ok {
		return
	}
	moveOut, ok := parseDateQuery(ctx, "moveOut", false)
	if !ok {
		return
	}

	output, err := c.prorateUseCase.Execute(ctx.Request.Context(), rent.CalculateProratedRentInput{
		MonthlyRent: monthlyRent,
		MoveIn:      *moveIn,
		MoveOut:     moveOut,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to prorate rent")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProratedRentResponse(output))
}

// Charges handles GET /leases/:id/charges requests.
func (c *RentController) Charges(ctx *gin.Context) {
	leaseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	value := ctx.Query("month")
	if value == "" {
		badRequest(ctx, domainerror.ErrCodeMissingParameters, "month is required")
		return
	}
	month, err := time.Parse("2006-01", value)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidDateFormat, "Invalid month format, expected YYYY-MM")
		return
	}

	output, err := c.chargesUseCase.Execute(ctx.Request.Context(), rent.CalculateMonthlyChargesInput{
		LeaseID: leaseID,
		Month:   month,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to calculate monthly charges")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyChargesResponse(output))
}

// RentIncrease handles POST /leases/:id/rent-increase requests.
func (c *RentController) RentIncrease(ctx *gin.Context) {
	leaseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.increaseUseCase.Execute(ctx.Request.Context(), rent.ApplyRentIncreaseInput{
		LeaseID: leaseID,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to apply rent increase")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRentIncreaseResponse(output))
}

// RecurringPayments handles POST /leases/:id/recurring-payments requests.
func (c *RentController) RecurringPayments(ctx *gin.Context) {
	leaseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.recurringUseCase.Execute(ctx.Request.Context(), rent.GenerateRecurringPaymentsInput{
		LeaseID: leaseID,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to generate recurring payments")
		return
	}

	status := http.StatusOK
	if len(output.Created) > 0 {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToRecurringPaymentsResponse(output))
}

// Discount handles GET /leases/:id/discount requests.
func (c *RentController) Discount(ctx *gin.Context) {
	leaseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	amount, ok := parseAmountQuery(ctx, "amount", domainerror.ErrCodeInvalidAmount)
	if !ok {
		return
	}

	output, err := c.discountUseCase.Execute(ctx.Request.Context(), rent.ApplyEarlyPaymentDiscountInput{
		LeaseID: leaseID,
		Amount:  amount,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to apply early payment discount")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDiscountResponse(output))
}

func parseAmountQuery(ctx *gin.Context, name string, code domainerror.LedgerErrorCode) (decimal.Decimal, bool) {
	value := ctx.Query(name)
	if value == "" {
		badRequest(ctx, domainerror.ErrCodeMissingParameters, name+" is required")
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		badRequest(ctx, code, "Invalid "+name+" value")
		return decimal.Zero, false
	}
	return amount, true
}
