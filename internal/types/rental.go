package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
)

// RentalPaymentStatus is the estatus_pago of a rental
type RentalPaymentStatus string

const (
	RentalPaymentStatusPaid    RentalPaymentStatus = "Pagado"
	RentalPaymentStatusPending RentalPaymentStatus = "Pendiente"
)

func (s RentalPaymentStatus) Validate() error {
	if s != RentalPaymentStatusPaid && s != RentalPaymentStatusPending {
		return ierr.NewError("invalid rental payment status").
			WithHintf("Payment status must be %s or %s", RentalPaymentStatusPaid, RentalPaymentStatusPending).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethod is how a tenant pays
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "Efectivo"
	PaymentMethodTransfer PaymentMethod = "Transferencia"
	PaymentMethodCard     PaymentMethod = "Tarjeta"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodTransfer,
	PaymentMethodCard,
}

func (m PaymentMethod) Validate() error {
	if !lo.Contains(PaymentMethods, m) {
		return ierr.NewError("invalid payment method").
			WithHintf("Payment method must be one of %v", PaymentMethods).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RentalFilter represents the filter for listing rentals
type RentalFilter struct {
	*QueryFilter

	PaymentStatus *RentalPaymentStatus `json:"payment_status,omitempty" form:"payment_status"`
	PersonID      *string              `json:"person_id,omitempty" form:"person_id"`
	SpotID        *string              `json:"spot_id,omitempty" form:"spot_id"`
	// ActiveOnly keeps rentals without an end date
	ActiveOnly bool `json:"active_only,omitempty" form:"active_only"`
}

// RentalSortDefault lists the most recent start first
const RentalSortDefault = "start_date"

func NewRentalFilter() *RentalFilter {
	f := &RentalFilter{QueryFilter: NewDefaultQueryFilter()}
	f.Sort = lo.ToPtr(RentalSortDefault)
	return f
}

func NewNoLimitRentalFilter() *RentalFilter {
	f := &RentalFilter{QueryFilter: NewNoLimitQueryFilter()}
	f.Sort = lo.ToPtr(RentalSortDefault)
	return f
}

func (f *RentalFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return ierr.WithError(err).WithHint(err.Error()).Mark(ierr.ErrValidation)
	}
	if f.PaymentStatus != nil {
		return f.PaymentStatus.Validate()
	}
	return nil
}
