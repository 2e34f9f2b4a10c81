package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// RentRollResponse represents a property's monthly rent roll.
type RentRollResponse struct {
	ID                 string          `json:"id"`
	PropertyID         string          `json:"property_id"`
	Month              int             `json:"month"`
	Year               int             `json:"year"`
	TotalUnits         int             `json:"total_units"`
	OccupiedUnits      int             `json:"occupied_units"`
	VacantUnits        int             `json:"vacant_units"`
	OccupancyRate      decimal.Decimal `json:"occupancy_rate"`
	PotentialRent      decimal.Decimal `json:"potential_rent"`
	ActualRent         decimal.Decimal `json:"actual_rent"`
	LossToVacancy      decimal.Decimal `json:"loss_to_vacancy"`
	OtherIncome        decimal.Decimal `json:"other_income"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetOperatingIncome decimal.Decimal `json:"net_operating_income"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToRentRollResponse converts a domain RentRoll to a RentRollResponse DTO.
func ToRentRollResponse(r *entity.RentRoll) RentRollResponse {
	return RentRollResponse{
		ID:                 r.ID.String(),
		PropertyID:         r.PropertyID.String(),
		Month:              r.Month,
		Year:               r.Year,
		TotalUnits:         r.TotalUnits,
		OccupiedUnits:      r.OccupiedUnits,
		VacantUnits:        r.VacantUnits,
		OccupancyRate:      r.OccupancyRate,
		PotentialRent:      r.PotentialRent,
		ActualRent:         r.ActualRent,
		LossToVacancy:      r.LossToVacancy,
		OtherIncome:        r.OtherIncome,
		TotalIncome:        r.TotalIncome,
		TotalExpenses:      r.TotalExpenses,
		NetOperatingIncome: r.NetOperatingIncome,
		UpdatedAt:          r.UpdatedAt,
	}
}

// PeriodResponse represents the inclusive bounds of a statement.
type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// IncomeResponse splits income into rent and other income.
type IncomeResponse struct {
	Rent  decimal.Decimal `json:"rent"`
	Other decimal.Decimal `json:"other"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseLineResponse is the total of one expense category.
type ExpenseLineResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents a property's income statement.
type IncomeStatementResponse struct {
	PropertyID         string                `json:"property_id"`
	Period             PeriodResponse        `json:"period"`
	Income             IncomeResponse        `json:"income"`
	Expenses           []ExpenseLineResponse `json:"expenses"`
	TotalExpenses      decimal.Decimal       `json:"total_expenses"`
	NetOperatingIncome decimal.Decimal       `json:"net_operating_income"`
}

// ToIncomeStatementResponse converts a domain IncomeStatement to its DTO.
func ToIncomeStatementResponse(s *entity.IncomeStatement) IncomeStatementResponse {
	expenses := make([]ExpenseLineResponse, len(s.Expenses))
	for i, line := range s.Expenses {
		expenses[i] = ExpenseLineResponse{
			Category: line.Category,
			Amount:   line.Amount,
		}
	}

	return IncomeStatementResponse{
		PropertyID: s.PropertyID.String(),
		Period: PeriodResponse{
			StartDate: s.Period.Start.Format(time.DateOnly),
			EndDate:   s.Period.End.Format(time.DateOnly),
		},
		Income: IncomeResponse{
			Rent:  s.Income.Rent,
			Other: s.Income.Other,
			Total: s.Income.Total,
		},
		Expenses:           expenses,
		TotalExpenses:      s.TotalExpenses,
		NetOperatingIncome: s.NetOperatingIncome,
	}
}

// TaxReportPropertyResponse is one property's line in a tax report.
type TaxReportPropertyResponse struct {
	PropertyID         string          `json:"property_id"`
	Property           string          `json:"property"`
	Address            string          `json:"address"`
	Income             decimal.Decimal `json:"income"`
	Expenses           decimal.Decimal `json:"expenses"`
	NetIncome          decimal.Decimal `json:"net_income"`
	DeductibleExpenses decimal.Decimal `json:"deductible_expenses"`
	Error              string          `json:"error,omitempty"`
}

// TaxReportSummaryResponse holds portfolio-wide totals.
type TaxReportSummaryResponse struct {
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	DeductibleExpenses decimal.Decimal `json:"deductible_expenses"`
	NetIncome          decimal.Decimal `json:"net_income"`
}

// TaxReportResponse represents a landlord's annual tax report.
type TaxReportResponse struct {
	LandlordID string                      `json:"landlord_id"`
	Year       int                         `json:"year"`
	Partial    bool                        `json:"partial"`
	Properties []TaxReportPropertyResponse `json:"properties"`
	Summary    TaxReportSummaryResponse    `json:"summary"`
}

// ToTaxReportResponse converts a domain TaxReport to its DTO.
func ToTaxReportResponse(r *entity.TaxReport) TaxReportResponse {
	properties := make([]TaxReportPropertyResponse, len(r.Properties))
	for i, row := range r.Properties {
		properties[i] = TaxReportPropertyResponse{
			PropertyID:         row.PropertyID.String(),
			Property:           row.Property,
			Address:            row.Address,
			Income:             row.Income,
			Expenses:           row.Expenses,
			NetIncome:          row.NetIncome,
			DeductibleExpenses: row.DeductibleExpenses,
			Error:              row.Error,
		}
	}

	return TaxReportResponse{
		LandlordID: r.LandlordID.String(),
		Year:       r.Year,
		Partial:    r.IsPartial(),
		Properties: properties,
		Summary: TaxReportSummaryResponse{
			TotalIncome:        r.Summary.TotalIncome,
			TotalExpenses:      r.Summary.TotalExpenses,
			DeductibleExpenses: r.Summary.DeductibleExpenses,
			NetIncome:          r.Summary.NetIncome,
		},
	}
}
