package payment

import (
	"time"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/shopspring/decimal"
)

// Payment is a payment tied to one rental and one billing period
type Payment struct {
	// ID is the unique identifier for the payment
	ID string `db:"id" json:"id"`
	// RentalID is the rental this payment settles
	RentalID string `db:"rental_id" json:"rental_id"`
	// PaymentDate is the day the money was received
	PaymentDate time.Time `db:"payment_date" json:"payment_date"`
	// Amount is never negative
	Amount decimal.Decimal `db:"amount" json:"amount"`
	// Period is the YYYY-MM billing period, unique per rental
	Period string `db:"period" json:"period"`
	// PaymentMethod is how the money was received
	PaymentMethod types.PaymentMethod `db:"payment_method" json:"payment_method"`
	// Reference describes the payment
	Reference string `db:"reference" json:"reference"`
	// ReceiptNumber is a short code printed on the receipt
	ReceiptNumber string `db:"receipt_number" json:"receipt_number"`

	types.BaseModel
}

func (p *Payment) Validate() error {
	if p.RentalID == "" {
		return ierr.NewError("rental is required").
			WithHint("Please provide the rental of the payment").
			Mark(ierr.ErrValidation)
	}
	if p.PaymentDate.IsZero() {
		return ierr.NewError("payment date is required").
			WithHint("Please provide the payment date").
			Mark(ierr.ErrValidation)
	}
	if p.Amount.IsNegative() {
		return ierr.NewError("payment amount cannot be negative").
			WithHint("Payment amount cannot be negative").
			WithReportableDetails(map[string]any{
				"amount": p.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if err := types.ValidatePeriodKey(p.Period); err != nil {
		return err
	}
	return p.PaymentMethod.Validate()
}
