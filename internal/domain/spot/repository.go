package spot

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// Repository defines the interface for spot data access
type Repository interface {
	Create(ctx context.Context, spot *Spot) error
	Get(ctx context.Context, id string) (*Spot, error)
	// GetForUpdate loads the spot and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id string) (*Spot, error)
	List(ctx context.Context, filter *types.SpotFilter) ([]*Spot, error)
	Count(ctx context.Context, filter *types.SpotFilter) (int, error)
	Update(ctx context.Context, spot *Spot) error
	Delete(ctx context.Context, id string) error
}
