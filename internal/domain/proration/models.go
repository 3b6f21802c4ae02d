package proration

import (
	"github.com/shopspring/decimal"
)

// FirstPeriod is the breakdown of the charge for the month a rental starts in.
type FirstPeriod struct {
	// Amount owed for the remainder of the starting month, rounded to cents
	Amount decimal.Decimal `json:"amount"`
	// RemainingDays counts the start day through the last day of the month
	RemainingDays int `json:"remaining_days"`
	// MonthLength is the number of days in the starting month
	MonthLength int `json:"month_length"`
	// Period is the YYYY-MM billing period the amount belongs to
	Period string `json:"period"`
}

// IsFullMonth reports whether the rental started on the first of the month
func (f FirstPeriod) IsFullMonth() bool {
	return f.RemainingDays == f.MonthLength
}
