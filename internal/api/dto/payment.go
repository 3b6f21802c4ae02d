package dto

import (
	"time"

	"github.com/flexprice/rvpark/internal/domain/payment"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
	"github.com/shopspring/decimal"
)

// RegisterPaymentRequest records a monthly payment against a rental
type RegisterPaymentRequest struct {
	RentalID string `json:"rental_id" binding:"required" validate:"required"`
	// PaymentDate decides the billing period the payment settles
	PaymentDate string `json:"payment_date" binding:"required" validate:"required,date"`
	// Amount defaults to the monthly rate
	Amount        *decimal.Decimal    `json:"amount,omitempty" swaggertype:"string" validate:"omitempty,nonnegative"`
	PaymentMethod types.PaymentMethod `json:"payment_method" binding:"required" validate:"required"`
	Reference     *string             `json:"reference,omitempty" validate:"omitempty,max=255"`
}

type UpdatePaymentRequest struct {
	PaymentDate   *string              `json:"payment_date,omitempty" validate:"omitempty,date"`
	Amount        *decimal.Decimal     `json:"amount,omitempty" swaggertype:"string" validate:"omitempty,nonnegative"`
	PaymentMethod *types.PaymentMethod `json:"payment_method,omitempty"`
	Reference     *string              `json:"reference,omitempty" validate:"omitempty,max=255"`
}

type PaymentResponse struct {
	*payment.Payment

	Rental *rental.Rental `json:"rental,omitempty"`
	Spot   *spot.Spot     `json:"spot,omitempty"`
}

// ListPaymentsResponse represents the response for listing payments
type ListPaymentsResponse = types.ListResponse[*PaymentResponse]

func (r *RegisterPaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.PaymentMethod.Validate()
}

func (r *RegisterPaymentRequest) Date() (time.Time, error) {
	return types.ParseDate(r.PaymentDate)
}

func (r *UpdatePaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PaymentMethod != nil {
		return r.PaymentMethod.Validate()
	}
	return nil
}
