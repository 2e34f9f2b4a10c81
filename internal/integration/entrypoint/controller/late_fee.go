package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/property-ledger/backend/internal/application/usecase/latefee"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
)

// LateFeeController handles overdue detection and late fee endpoints.
type LateFeeController struct {
	lateFeesUseCase *latefee.CalculateLateFeesUseCase
	overdueUseCase  *latefee.MarkOverdueUseCase
}

// NewLateFeeController creates a new late fee controller instance.
func NewLateFeeController(
	lateFeesUseCase *latefee.CalculateLateFeesUseCase,
	overdueUseCase *latefee.MarkOverdueUseCase,
) *LateFeeController {
	return &LateFeeController{
		lateFeesUseCase: lateFeesUseCase,
		overdueUseCase:  overdueUseCase,
	}
}

// LateFees handles POST /leases/:id/late-fees requests.
// Payments that fail are reported in the body with a 207 status.
func (c *LateFeeController) LateFees(ctx *gin.Context) {
	leaseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.lateFeesUseCase.Execute(ctx.Request.Context(), latefee.CalculateLateFeesInput{
		LeaseID: leaseID,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to calculate late fees")
		return
	}

	status := http.StatusOK
	if output.HasFailures() {
		status = http.StatusMultiStatus
	}
	ctx.JSON(status, dto.ToLateFeesResponse(output))
}

// Overdue handles POST /leases/:id/overdue requests.
func (c *LateFeeController) Overdue(ctx *gin.Context) {
	leaseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.overdueUseCase.Execute(ctx.Request.Context(), latefee.MarkOverdueInput{
		LeaseID: leaseID,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to mark overdue payments")
		return
	}

	ctx.JSON(http.StatusOK, dto.OverdueResponse{
		LeaseID: output.LeaseID.String(),
		Marked:  output.Marked,
	})
}
