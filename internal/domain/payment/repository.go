package payment

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// Repository defines the interface for payment data access
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// GetByPeriod returns the payment of a rental for a period, ErrNotFound if none
	GetByPeriod(ctx context.Context, rentalID, period string) (*Payment, error)
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id string) error
	// DeleteByRental removes every payment of a rental
	DeleteByRental(ctx context.Context, rentalID string) error
}
