// Package proration computes what a tenant owes for a partial first month.
package proration

import (
	"time"

	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/shopspring/decimal"
)

// Calculator prices billing periods against a flat monthly rate.
// Implementations are pure and never touch storage.
type Calculator interface {
	// ComputeFirstPeriod prorates the monthly rate over the days left in the
	// month of startDate, start day included. A start on the 1st is a full month.
	ComputeFirstPeriod(startDate time.Time) FirstPeriod

	// ComputePeriodFor returns the billing period a date falls in
	ComputePeriodFor(date time.Time) string

	// MonthlyRate is the amount charged for a full month
	MonthlyRate() decimal.Decimal
}

// NewCalculator creates a day based calculator charging monthlyRate per month.
func NewCalculator(monthlyRate decimal.Decimal) Calculator {
	return &dayBasedCalculator{monthlyRate: monthlyRate}
}

// NewCalculatorFromConfig reads the rate from billing.monthly_rate
func NewCalculatorFromConfig(cfg *config.Configuration) Calculator {
	return NewCalculator(cfg.Billing.MonthlyRate)
}

// dayBasedCalculator splits a month into equal daily shares.
type dayBasedCalculator struct {
	monthlyRate decimal.Decimal
}

func (c *dayBasedCalculator) ComputeFirstPeriod(startDate time.Time) FirstPeriod {
	start := types.DateOnly(startDate)
	monthLength := types.LastDayOfMonth(start.Year(), start.Month())
	remainingDays := monthLength - start.Day() + 1

	amount := c.monthlyRate
	if start.Day() != 1 {
		// multiply first so the only rounding is the final one
		amount = c.monthlyRate.
			Mul(decimal.NewFromInt(int64(remainingDays))).
			Div(decimal.NewFromInt(int64(monthLength)))
	}

	return FirstPeriod{
		Amount:        amount.Round(2),
		RemainingDays: remainingDays,
		MonthLength:   monthLength,
		Period:        types.PeriodKey(start),
	}
}

func (c *dayBasedCalculator) ComputePeriodFor(date time.Time) string {
	return types.PeriodKey(date)
}

func (c *dayBasedCalculator) MonthlyRate() decimal.Decimal {
	return c.monthlyRate
}
