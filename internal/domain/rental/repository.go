package rental

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// Repository defines the interface for rental data access
type Repository interface {
	Create(ctx context.Context, rental *Rental) error
	Get(ctx context.Context, id string) (*Rental, error)
	// GetForUpdate loads the rental and locks its row for the surrounding transaction
	GetForUpdate(ctx context.Context, id string) (*Rental, error)
	// GetActiveBySpot returns the rental without end date on the spot, ErrNotFound if none
	GetActiveBySpot(ctx context.Context, spotID string) (*Rental, error)
	List(ctx context.Context, filter *types.RentalFilter) ([]*Rental, error)
	Count(ctx context.Context, filter *types.RentalFilter) (int, error)
	Update(ctx context.Context, rental *Rental) error
	Delete(ctx context.Context, id string) error
}
