package dto

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/domain/payment"
	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/domain/proration"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateRentalRequest struct {
	PersonID string `json:"person_id" binding:"required" validate:"required"`
	SpotID   string `json:"spot_id" binding:"required" validate:"required"`
	// StartDate is a YYYY-MM-DD calendar date
	StartDate string `json:"start_date" binding:"required" validate:"required,date"`
	// EndDate is set for rentals with a known last day
	EndDate       *string             `json:"end_date,omitempty" validate:"omitempty,date"`
	PaymentMethod types.PaymentMethod `json:"payment_method" binding:"required" validate:"required"`
	Notes         string              `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateRentalRequest changes only the fields it carries
type UpdateRentalRequest struct {
	StartDate     *string                    `json:"start_date,omitempty" validate:"omitempty,date"`
	EndDate       *string                    `json:"end_date,omitempty" validate:"omitempty,date"`
	PaymentMethod *types.PaymentMethod       `json:"payment_method,omitempty"`
	PaymentStatus *types.RentalPaymentStatus `json:"payment_status,omitempty"`
	TotalAmount   *decimal.Decimal           `json:"total_amount,omitempty" swaggertype:"string" validate:"omitempty,nonnegative"`
	Notes         *string                    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// FirstPeriodResponse is the breakdown of the first, possibly prorated, payment
type FirstPeriodResponse struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	RemainingDays int             `json:"remaining_days"`
	MonthLength   int             `json:"month_length"`
	Period        string          `json:"period"`
	MonthlyRate   decimal.Decimal `json:"monthly_rate" swaggertype:"string"`
}

type RentalResponse struct {
	*rental.Rental

	Person   *person.Person     `json:"person,omitempty"`
	Spot     *spot.Spot         `json:"spot,omitempty"`
	Payments []*payment.Payment `json:"payments,omitempty"`

	// FirstPeriod is only present on the response to a create
	FirstPeriod *FirstPeriodResponse `json:"first_period,omitempty"`
}

// ListRentalsResponse represents the response for listing rentals
type ListRentalsResponse = types.ListResponse[*RentalResponse]

func NewFirstPeriodResponse(fp proration.FirstPeriod, monthlyRate decimal.Decimal) *FirstPeriodResponse {
	return &FirstPeriodResponse{
		Amount:        fp.Amount,
		RemainingDays: fp.RemainingDays,
		MonthLength:   fp.MonthLength,
		Period:        fp.Period,
		MonthlyRate:   monthlyRate,
	}
}

func (r *CreateRentalRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return err
	}
	start, end, err := r.Dates()
	if err != nil {
		return err
	}
	if end != nil {
		return types.ValidateDateRange(start, *end)
	}
	return nil
}

// Dates parses the start and optional end date
func (r *CreateRentalRequest) Dates() (time.Time, *time.Time, error) {
	start, err := types.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	if r.EndDate == nil {
		return start, nil, nil
	}
	end, err := types.ParseDate(*r.EndDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

// ToRental builds a paid rental priced at the first period amount. The end
// date is set separately so total days get computed.
func (r *CreateRentalRequest) ToRental(ctx context.Context, start time.Time, fp proration.FirstPeriod) *rental.Rental {
	return &rental.Rental{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENTAL),
		PersonID:      r.PersonID,
		SpotID:        r.SpotID,
		StartDate:     types.DateOnly(start),
		TotalAmount:   fp.Amount,
		PaymentStatus: types.RentalPaymentStatusPaid,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateRentalRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PaymentMethod != nil {
		if err := r.PaymentMethod.Validate(); err != nil {
			return err
		}
	}
	if r.PaymentStatus != nil {
		return r.PaymentStatus.Validate()
	}
	return nil
}
