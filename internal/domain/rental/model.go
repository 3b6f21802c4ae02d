package rental

import (
	"time"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/shopspring/decimal"
)

// Rental binds a tenant to a spot for a date range
type Rental struct {
	// ID is the unique identifier for the rental
	ID string `db:"id" json:"id"`

	// PersonID is the tenant
	PersonID string `db:"person_id" json:"person_id"`

	// SpotID is the rented spot
	SpotID string `db:"spot_id" json:"spot_id"`

	// StartDate is the first day of the rental
	StartDate time.Time `db:"start_date" json:"start_date"`

	// EndDate is the last day of the rental, nil while the rental is active
	EndDate *time.Time `db:"end_date" json:"end_date,omitempty"`

	// TotalDays is the inclusive length of the rental, set only with EndDate
	TotalDays *int `db:"total_days" json:"total_days,omitempty"`

	// TotalAmount is the amount of the first computed payment
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`

	// PaymentStatus is Pagado once any payment is registered
	PaymentStatus types.RentalPaymentStatus `db:"payment_status" json:"payment_status"`

	// PaymentMethod is how the tenant pays
	PaymentMethod types.PaymentMethod `db:"payment_method" json:"payment_method"`

	// Notes are free form remarks
	Notes string `db:"notes" json:"notes"`

	types.BaseModel
}

// IsActive reports whether the rental has no end date
func (r *Rental) IsActive() bool {
	return r.EndDate == nil
}

// IsClosed reports whether the rental ended before today
func (r *Rental) IsClosed(today time.Time) bool {
	return r.EndDate != nil && types.DateOnly(*r.EndDate).Before(types.DateOnly(today))
}

// SetEndDate sets the end date and recomputes TotalDays. A nil end clears both.
func (r *Rental) SetEndDate(end *time.Time) error {
	if end == nil {
		r.EndDate = nil
		r.TotalDays = nil
		return nil
	}

	d := types.DateOnly(*end)
	if err := types.ValidateDateRange(r.StartDate, d); err != nil {
		return err
	}

	days := types.InclusiveDayCount(r.StartDate, d)
	r.EndDate = &d
	r.TotalDays = &days
	return nil
}

func (r *Rental) Validate() error {
	if r.PersonID == "" {
		return ierr.NewError("person is required").
			WithHint("Please provide the tenant of the rental").
			Mark(ierr.ErrValidation)
	}
	if r.SpotID == "" {
		return ierr.NewError("spot is required").
			WithHint("Please provide the spot of the rental").
			Mark(ierr.ErrValidation)
	}
	if r.StartDate.IsZero() {
		return ierr.NewError("start date is required").
			WithHint("Please provide the start date of the rental").
			Mark(ierr.ErrValidation)
	}
	if r.TotalAmount.IsNegative() {
		return ierr.NewError("total amount cannot be negative").
			WithHint("Total amount cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return err
	}
	return r.PaymentStatus.Validate()
}
