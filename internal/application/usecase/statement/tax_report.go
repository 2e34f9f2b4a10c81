package statement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GenerateTaxReportInput represents the input for a landlord's tax report.
type GenerateTaxReportInput struct {
	LandlordID uuid.UUID
	Year       int
}

// GenerateTaxReportUseCase aggregates every property of a landlord over a
// calendar year.
type GenerateTaxReportUseCase struct {
	propertyRepo adapter.PropertyRepository
	statements   *GenerateIncomeStatementUseCase
}

// NewGenerateTaxReportUseCase creates a new GenerateTaxReportUseCase instance.
func NewGenerateTaxReportUseCase(
	propertyRepo adapter.PropertyRepository,
	ledgerRepo adapter.LedgerRepository,
	expenseRepo adapter.ExpenseRepository,
) *GenerateTaxReportUseCase {
	return &GenerateTaxReportUseCase{
		propertyRepo: propertyRepo,
		statements:   NewGenerateIncomeStatementUseCase(propertyRepo, ledgerRepo, expenseRepo),
	}
}

// Execute builds the report. A property whose figures cannot be computed is
// reported with an error and left out of the summary; the others are still
// aggregated. Cancellation stops before the next property. A landlord with
// no properties, known or not, gets an empty report rather than NotFound.
func (uc *GenerateTaxReportUseCase) Execute(ctx context.Context, input GenerateTaxReportInput) (*entity.TaxReport, error) {
	if input.Year < 1 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidYear,
			"year must be positive",
			domainerror.ErrInvalidYear,
		)
	}

	properties, err := uc.propertyRepo.FindByOwner(ctx, input.LandlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	report := &entity.TaxReport{
		LandlordID: input.LandlordID,
		Year:       input.Year,
		Properties: make([]entity.TaxReportRow, 0, len(properties)),
		Summary: entity.TaxReportSummary{
			TotalIncome:        decimal.Zero,
			TotalExpenses:      decimal.Zero,
			DeductibleExpenses: decimal.Zero,
			NetIncome:          decimal.Zero,
		},
		Failures: []uuid.UUID{},
	}
	logger := slog.With("landlord_id", input.LandlordID, "year", input.Year)

	period := valueobject.YearPeriod(input.Year)
	for _, property := range properties {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		row := entity.TaxReportRow{
			PropertyID:         property.ID,
			Property:           property.Title,
			Address:            property.Address,
			Income:             decimal.Zero,
			Expenses:           decimal.Zero,
			NetIncome:          decimal.Zero,
			DeductibleExpenses: decimal.Zero,
		}

		statement, deductible, err := uc.statements.build(ctx, property.ID, period)
		if err != nil {
			logger.Error("Failed to compute property figures", "property_id", property.ID, "error", err)
			row.Error = err.Error()
			report.Properties = append(report.Properties, row)
			report.Failures = append(report.Failures, property.ID)
			continue
		}

		row.Income = statement.Income.Total
		row.Expenses = statement.TotalExpenses
		row.NetIncome = statement.NetOperatingIncome
		row.DeductibleExpenses = deductible
		report.Properties = append(report.Properties, row)

		report.Summary.TotalIncome = report.Summary.TotalIncome.Add(row.Income)
		report.Summary.TotalExpenses = report.Summary.TotalExpenses.Add(row.Expenses)
		report.Summary.DeductibleExpenses = report.Summary.DeductibleExpenses.Add(deductible)
	}
	report.Summary.NetIncome = report.Summary.TotalIncome.Sub(report.Summary.TotalExpenses)

	if report.IsPartial() {
		logger.Warn("Tax report is partial", "failed_properties", len(report.Failures))
	}
	return report, nil
}
