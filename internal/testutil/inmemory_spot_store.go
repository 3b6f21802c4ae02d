package testutil

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/spot"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

var _ spot.Repository = (*InMemorySpotStore)(nil)

// InMemorySpotStore implements spot.Repository
type InMemorySpotStore struct {
	*InMemoryStore[*spot.Spot]
}

func NewInMemorySpotStore() *InMemorySpotStore {
	return &InMemorySpotStore{
		InMemoryStore: NewInMemoryStore[*spot.Spot]("Spot", func(s *spot.Spot) *spot.Spot {
			c := *s
			return &c
		}),
	}
}

func spotFilterFn(ctx context.Context, s *spot.Spot, filter interface{}) bool {
	f, ok := filter.(*types.SpotFilter)
	if !ok || f == nil {
		return true
	}
	if f.RvParkID != nil && s.RvParkID != *f.RvParkID {
		return false
	}
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	return true
}

func spotSortFn(i, j *spot.Spot) bool {
	if i.Code != j.Code {
		return i.Code < j.Code
	}
	return i.ID < j.ID
}

func (s *InMemorySpotStore) Create(ctx context.Context, sp *spot.Spot) error {
	if sp == nil {
		return ierr.NewError("spot cannot be nil").
			WithHint("Spot cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.checkCode(ctx, sp); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, sp.ID, sp)
}

func (s *InMemorySpotStore) Get(ctx context.Context, id string) (*spot.Spot, error) {
	return s.InMemoryStore.Get(ctx, id)
}

// GetForUpdate is Get; MockPostgresClient already serializes transactions
func (s *InMemorySpotStore) GetForUpdate(ctx context.Context, id string) (*spot.Spot, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemorySpotStore) List(ctx context.Context, filter *types.SpotFilter) ([]*spot.Spot, error) {
	if filter == nil {
		filter = types.NewNoLimitSpotFilter()
	}
	return s.InMemoryStore.List(ctx, filter, spotFilterFn, spotSortFn)
}

func (s *InMemorySpotStore) Count(ctx context.Context, filter *types.SpotFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, spotFilterFn)
}

func (s *InMemorySpotStore) Update(ctx context.Context, sp *spot.Spot) error {
	if err := s.checkCode(ctx, sp); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, sp.ID, sp)
}

func (s *InMemorySpotStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// checkCode mirrors the unique (rv_park_id, code) index
func (s *InMemorySpotStore) checkCode(ctx context.Context, sp *spot.Spot) error {
	_, taken := s.Find(ctx, func(other *spot.Spot) bool {
		return other.ID != sp.ID && other.RvParkID == sp.RvParkID && other.Code == sp.Code
	})
	if taken {
		return ierr.NewErrorf("spot code %s already used in rv park %s", sp.Code, sp.RvParkID).
			WithHint("A spot with this code already exists in the RV park").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}
