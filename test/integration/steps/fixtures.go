package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence"
)

// leaseFixture is the docstring shape of a lease.
type leaseFixture struct {
	MonthlyRent      decimal.Decimal  `json:"monthly_rent"`
	StartDate        string           `json:"start_date"`
	EndDate          *string          `json:"end_date"`
	RentDueDay       int              `json:"rent_due_day"`
	Status           string           `json:"status"`
	RentIncreaseRate *decimal.Decimal `json:"rent_increase_rate"`
	NextIncreaseDate *string          `json:"next_increase_date"`
	LateFeeGraceDays int              `json:"late_fee_grace_days"`
	LateFeeAmount    decimal.Decimal  `json:"late_fee_amount"`
	Charges          []chargeFixture  `json:"charges"`
}

type chargeFixture struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date"`
}

// paymentFixture is the docstring shape of a rent payment.
type paymentFixture struct {
	DueDate        string           `json:"due_date"`
	BaseRent       *decimal.Decimal `json:"base_rent"`
	Amount         decimal.Decimal  `json:"amount"`
	AmountPaid     decimal.Decimal  `json:"amount_paid"`
	Status         string           `json:"status"`
	LateFees       decimal.Decimal  `json:"late_fees"`
	OtherCharges   decimal.Decimal  `json:"other_charges"`
	LateFeeApplied bool             `json:"late_fee_applied"`
}

// expenseFixture is the docstring shape of an expense.
type expenseFixture struct {
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	TaxDeductible bool            `json:"tax_deductible"`
}

// incomeFixture is the docstring shape of a ledger income entry.
type incomeFixture struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// registerFixtureSteps registers steps that seed ledger state.
func registerFixtureSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^a property "([^"]*)" owned by me with (\d+) units?$`, aPropertyOwnedByMe)
	ctx.Step(`^a property "([^"]*)" owned by someone else$`, aPropertyOwnedBySomeoneElse)
	ctx.Step(`^a lease "([^"]*)" on property "([^"]*)":$`, aLeaseOnProperty)
	ctx.Step(`^a rent payment "([^"]*)" for lease "([^"]*)":$`, aRentPaymentForLease)
	ctx.Step(`^an expense on property "([^"]*)":$`, anExpenseOnProperty)
	ctx.Step(`^an income entry on property "([^"]*)" for lease "([^"]*)":$`, anIncomeEntryOnProperty)
	ctx.Step(`^the scheduler runs once$`, theSchedulerRunsOnce)
}

// mintAccessToken signs an access token the API accepts.
func mintAccessToken(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := adapters.NewAccessClaims(userID, email, role, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func parseFixtureTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t.UTC(), nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseFixtureTime(*value)
	if err != nil {
		return nil, err
	}
	d := valueobject.DateOnly(t)
	return &d, nil
}

func (tc *TestContext) lookup(name string) (uuid.UUID, error) {
	id, ok := tc.ids[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("no fixture named %q", name)
	}
	return id, nil
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	now, err := parseFixtureTime(value)
	if err != nil {
		return err
	}
	tc.clock.Set(now)
	return nil
}

func aPropertyOwnedByMe(ctx context.Context, name string, units int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.userID == uuid.Nil {
		return fmt.Errorf("authenticate before creating owned properties")
	}
	return tc.createProperty(ctx, name, tc.userID, units)
}

func aPropertyOwnedBySomeoneElse(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.createProperty(ctx, name, uuid.New(), 1)
}

func (tc *TestContext) createProperty(ctx context.Context, name string, ownerID uuid.UUID, units int) error {
	property := entity.NewProperty(ownerID, name, name+" Street 1")
	property.TotalUnits = units

	if err := persistence.NewPropertyRepository(tc.db.DbConn).Create(ctx, property); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	tc.ids[name] = property.ID
	return nil
}

func aLeaseOnProperty(ctx context.Context, name, propertyName string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	propertyID, err := tc.lookup(propertyName)
	if err != nil {
		return err
	}

	var fixture leaseFixture
	if err := json.Unmarshal([]byte(body.Content), &fixture); err != nil {
		return fmt.Errorf("invalid lease fixture: %w", err)
	}

	start, err := parseFixtureTime(fixture.StartDate)
	if err != nil {
		return err
	}
	end, err := parseOptionalDate(fixture.EndDate)
	if err != nil {
		return err
	}

	dueDay := fixture.RentDueDay
	if dueDay == 0 {
		dueDay = 1
	}

	lease := entity.NewLease(propertyID, uuid.New(), fixture.MonthlyRent, start, end, dueDay)
	if fixture.Status != "" {
		lease.Status = entity.LeaseStatus(fixture.Status)
	}
	lease.RentIncreaseRate = fixture.RentIncreaseRate
	if lease.NextIncreaseDate, err = parseOptionalDate(fixture.NextIncreaseDate); err != nil {
		return err
	}
	lease.LateFeeGraceDays = fixture.LateFeeGraceDays
	lease.LateFeeAmount = fixture.LateFeeAmount

	for _, c := range fixture.Charges {
		chargeStart, err := parseFixtureTime(c.StartDate)
		if err != nil {
			return err
		}
		chargeEnd, err := parseOptionalDate(c.EndDate)
		if err != nil {
			return err
		}
		lease.Charges = append(lease.Charges, &entity.LeaseCharge{
			ID:          uuid.New(),
			LeaseID:     lease.ID,
			Description: c.Description,
			Amount:      c.Amount,
			Frequency:   entity.ChargeFrequency(c.Frequency),
			StartDate:   valueobject.DateOnly(chargeStart),
			EndDate:     chargeEnd,
			IsActive:    true,
			CreatedAt:   lease.CreatedAt,
			UpdatedAt:   lease.UpdatedAt,
		})
	}

	if err := persistence.NewLeaseRepository(tc.db.DbConn).Create(ctx, lease); err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}
	tc.ids[name] = lease.ID
	return nil
}

func aRentPaymentForLease(ctx context.Context, name, leaseName string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	leaseID, err := tc.lookup(leaseName)
	if err != nil {
		return err
	}

	var fixture paymentFixture
	if err := json.Unmarshal([]byte(body.Content), &fixture); err != nil {
		return fmt.Errorf("invalid rent payment fixture: %w", err)
	}

	due, err := parseFixtureTime(fixture.DueDate)
	if err != nil {
		return err
	}

	baseRent := fixture.Amount
	if fixture.BaseRent != nil {
		baseRent = *fixture.BaseRent
	}

	payment := entity.NewRentPayment(leaseID, valueobject.DateOnly(due), baseRent, fixture.Amount)
	if fixture.Status != "" {
		payment.Status = entity.RentPaymentStatus(fixture.Status)
	}
	payment.AmountPaid = fixture.AmountPaid
	payment.LateFees = fixture.LateFees
	payment.OtherCharges = fixture.OtherCharges
	payment.LateFeeApplied = fixture.LateFeeApplied

	if err := persistence.NewRentPaymentRepository(tc.db.DbConn).Create(ctx, payment); err != nil {
		return fmt.Errorf("failed to create rent payment: %w", err)
	}
	tc.ids[name] = payment.ID
	return nil
}

func anExpenseOnProperty(ctx context.Context, propertyName string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	propertyID, err := tc.lookup(propertyName)
	if err != nil {
		return err
	}

	var fixture expenseFixture
	if err := json.Unmarshal([]byte(body.Content), &fixture); err != nil {
		return fmt.Errorf("invalid expense fixture: %w", err)
	}

	date, err := parseFixtureTime(fixture.Date)
	if err != nil {
		return err
	}

	expense := &entity.Expense{
		ID:            uuid.New(),
		PropertyID:    propertyID,
		Category:      fixture.Category,
		Description:   fixture.Description,
		Amount:        fixture.Amount,
		Date:          valueobject.DateOnly(date),
		TaxDeductible: fixture.TaxDeductible,
		CreatedAt:     time.Now().UTC(),
	}
	if err := persistence.NewExpenseRepository(tc.db.DbConn).Create(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func anIncomeEntryOnProperty(ctx context.Context, propertyName, leaseName string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	propertyID, err := tc.lookup(propertyName)
	if err != nil {
		return err
	}
	leaseID, err := tc.lookup(leaseName)
	if err != nil {
		return err
	}

	var fixture incomeFixture
	if err := json.Unmarshal([]byte(body.Content), &fixture); err != nil {
		return fmt.Errorf("invalid income fixture: %w", err)
	}

	date, err := parseFixtureTime(fixture.Date)
	if err != nil {
		return err
	}

	entry := entity.NewIncomeTransaction(propertyID, leaseID, fixture.Category, fixture.Description, fixture.Amount, date).
		WithReference(leaseID, entity.ReferenceTypeLease)
	if err := persistence.NewLedgerRepository(tc.db.DbConn).Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

func theSchedulerRunsOnce(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.injector.Worker.RunOnce(ctx)
	return nil
}
