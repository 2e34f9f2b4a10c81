// Package statement contains income statement and tax report use cases.
package statement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GenerateIncomeStatementInput represents the input for an income statement.
// Start and End are calendar days, both included.
type GenerateIncomeStatementInput struct {
	PropertyID uuid.UUID
	Start      time.Time
	End        time.Time
}

// GenerateIncomeStatementUseCase summarises a property's ledger and expenses
// over an arbitrary date range.
type GenerateIncomeStatementUseCase struct {
	propertyRepo adapter.PropertyRepository
	ledgerRepo   adapter.LedgerRepository
	expenseRepo  adapter.ExpenseRepository
}

// NewGenerateIncomeStatementUseCase creates a new GenerateIncomeStatementUseCase instance.
func NewGenerateIncomeStatementUseCase(
	propertyRepo adapter.PropertyRepository,
	ledgerRepo adapter.LedgerRepository,
	expenseRepo adapter.ExpenseRepository,
) *GenerateIncomeStatementUseCase {
	return &GenerateIncomeStatementUseCase{
		propertyRepo: propertyRepo,
		ledgerRepo:   ledgerRepo,
		expenseRepo:  expenseRepo,
	}
}

// Execute builds the statement.
func (uc *GenerateIncomeStatementUseCase) Execute(ctx context.Context, input GenerateIncomeStatementInput) (*entity.IncomeStatement, error) {
	period := valueobject.NewPeriod(input.Start, input.End)
	if !period.IsValid() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	if _, err := uc.propertyRepo.FindByID(ctx, input.PropertyID); err != nil {
		if errors.Is(err, domainerror.ErrPropertyNotFound) {
			return nil, domainerror.NewPropertyNotFoundError()
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	statement, _, err := uc.build(ctx, input.PropertyID, period)
	if err != nil {
		return nil, err
	}
	return statement, nil
}

// build computes the statement of a property and the total of its
// tax-deductible expenses over period.
func (uc *GenerateIncomeStatementUseCase) build(
	ctx context.Context,
	propertyID uuid.UUID,
	period valueobject.Period,
) (*entity.IncomeStatement, decimal.Decimal, error) {
	entries, err := uc.ledgerRepo.FindByProperty(ctx, propertyID, period)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load ledger: %w", err)
	}
	expenses, err := uc.expenseRepo.FindByProperty(ctx, propertyID, period)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load expenses: %w", err)
	}

	statement := Summarize(propertyID, period, entries, expenses)

	deductible := decimal.Zero
	for _, expense := range expenses {
		if expense.TaxDeductible {
			deductible = deductible.Add(expense.Amount)
		}
	}
	return statement, deductible, nil
}

// Summarize folds ledger entries and expenses into an income statement.
// Expense lines are ordered by category.
func Summarize(
	propertyID uuid.UUID,
	period valueobject.Period,
	entries []*entity.Transaction,
	expenses []*entity.Expense,
) *entity.IncomeStatement {
	income := entity.IncomeBreakdown{
		Rent:  decimal.Zero,
		Other: decimal.Zero,
	}
	for _, entry := range entries {
		if entry.Type != entity.TransactionTypeIncome {
			continue
		}
		if entry.IsRentIncome() {
			income.Rent = income.Rent.Add(entry.Amount)
		} else {
			income.Other = income.Other.Add(entry.Amount)
		}
	}
	income.Total = income.Rent.Add(income.Other)

	byCategory := map[string]decimal.Decimal{}
	for _, expense := range expenses {
		byCategory[expense.Category] = byCategory[expense.Category].Add(expense.Amount)
	}

	lines := make([]entity.ExpenseCategoryTotal, 0, len(byCategory))
	totalExpenses := decimal.Zero
	for category, amount := range byCategory {
		lines = append(lines, entity.ExpenseCategoryTotal{Category: category, Amount: amount})
		totalExpenses = totalExpenses.Add(amount)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Category < lines[j].Category
	})

	return &entity.IncomeStatement{
		PropertyID: propertyID,
		Period: entity.StatementPeriod{
			Start: period.Start,
			End:   period.End,
		},
		Income:             income,
		Expenses:           lines,
		TotalExpenses:      totalExpenses,
		NetOperatingIncome: income.Total.Sub(totalExpenses),
	}
}
