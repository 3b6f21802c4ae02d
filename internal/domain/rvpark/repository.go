package rvpark

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// Repository defines the interface for rv park data access
type Repository interface {
	Create(ctx context.Context, park *RvPark) error
	Get(ctx context.Context, id string) (*RvPark, error)
	List(ctx context.Context, filter *types.RvParkFilter) ([]*RvPark, error)
	Count(ctx context.Context, filter *types.RvParkFilter) (int, error)
	Update(ctx context.Context, park *RvPark) error
	Delete(ctx context.Context, id string) error
}
