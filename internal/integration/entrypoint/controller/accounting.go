package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/rentroll"
	"github.com/property-ledger/backend/internal/application/usecase/statement"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// AccountingController handles rent roll and financial statement endpoints.
type AccountingController struct {
	rentRollUseCase        *rentroll.GenerateRentRollUseCase
	incomeStatementUseCase *statement.GenerateIncomeStatementUseCase
	taxReportUseCase       *statement.GenerateTaxReportUseCase
}

// NewAccountingController creates a new accounting controller instance.
func NewAccountingController(
	rentRollUseCase *rentroll.GenerateRentRollUseCase,
	incomeStatementUseCase *statement.GenerateIncomeStatementUseCase,
	taxReportUseCase *statement.GenerateTaxReportUseCase,
) *AccountingController {
	return &AccountingController{
		rentRollUseCase:        rentRollUseCase,
		incomeStatementUseCase: incomeStatementUseCase,
		taxReportUseCase:       taxReportUseCase,
	}
}

// RentRoll handles GET /accounting/rent-roll requests.
func (c *AccountingController) RentRoll(ctx *gin.Context) {
	propertyID, ok := parseIDQuery(ctx, "propertyId")
	if !ok {
		return
	}
	month, ok := parseIntQuery(ctx, "month", domainerror.ErrCodeInvalidMonth)
	if !ok {
		return
	}
	year, ok := parseIntQuery(ctx, "year", domainerror.ErrCodeInvalidYear)
	if !ok {
		return
	}

	roll, err := c.rentRollUseCase.Execute(ctx.Request.Context(), rentroll.GenerateRentRollInput{
		PropertyID: propertyID,
		Month:      month,
		Year:       year,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to generate rent roll")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRentRollResponse(roll))
}

// IncomeStatement handles GET /accounting/income-statement requests.
func (c *AccountingController) IncomeStatement(ctx *gin.Context) {
	propertyID, ok := parseIDQuery(ctx, "propertyId")
	if !ok {
		return
	}
	start, ok := parseDateQuery(ctx, "startDate", true)
	if !ok {
		return
	}
	end, ok := parseDateQuery(ctx, "endDate", true)
	if !ok {
		return
	}

	result, err := c.incomeStatementUseCase.Execute(ctx.Request.Context(), statement.GenerateIncomeStatementInput{
		PropertyID: propertyID,
		Start:      *start,
		End:        *end,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to generate income statement")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeStatementResponse(result))
}

// TaxReport handles GET /accounting/tax-report requests.
// Landlords may only request their own report.
func (c *AccountingController) TaxReport(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	year, ok := parseIntQuery(ctx, "year", domainerror.ErrCodeInvalidYear)
	if !ok {
		return
	}

	landlordID := userID
	if ctx.Query("landlordId") != "" {
		if landlordID, ok = parseIDQuery(ctx, "landlordId"); !ok {
			return
		}
	}

	role, _ := middleware.GetUserRoleFromContext(ctx)
	if landlordID != userID && role != adapter.RoleAdmin {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "Cannot access another landlord's report",
			Code:  string(domainerror.ErrCodeForbidden),
		})
		return
	}

	report, err := c.taxReportUseCase.Execute(ctx.Request.Context(), statement.GenerateTaxReportInput{
		LandlordID: landlordID,
		Year:       year,
	})
	if err != nil {
		handleLedgerError(ctx, err, "Failed to generate tax report")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaxReportResponse(report))
}
