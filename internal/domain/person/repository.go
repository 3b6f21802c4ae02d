package person

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// Repository defines the interface for person data access
type Repository interface {
	Create(ctx context.Context, person *Person) error
	Get(ctx context.Context, id string) (*Person, error)
	List(ctx context.Context, filter *types.PersonFilter) ([]*Person, error)
	Count(ctx context.Context, filter *types.PersonFilter) (int, error)
	Update(ctx context.Context, person *Person) error
	Delete(ctx context.Context, id string) error
}
