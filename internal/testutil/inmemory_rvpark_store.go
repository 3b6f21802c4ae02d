package testutil

import (
	"context"
	"strings"

	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/types"
)

var _ rvpark.Repository = (*InMemoryRvParkStore)(nil)

// InMemoryRvParkStore implements rvpark.Repository
type InMemoryRvParkStore struct {
	*InMemoryStore[*rvpark.RvPark]
}

func NewInMemoryRvParkStore() *InMemoryRvParkStore {
	return &InMemoryRvParkStore{
		InMemoryStore: NewInMemoryStore[*rvpark.RvPark]("RvPark", func(p *rvpark.RvPark) *rvpark.RvPark {
			c := *p
			return &c
		}),
	}
}

func rvParkFilterFn(ctx context.Context, p *rvpark.RvPark, filter interface{}) bool {
	f, ok := filter.(*types.RvParkFilter)
	if !ok || f == nil {
		return true
	}
	if f.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*f.Name)) {
		return false
	}
	return true
}

func (s *InMemoryRvParkStore) Create(ctx context.Context, p *rvpark.RvPark) error {
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryRvParkStore) Get(ctx context.Context, id string) (*rvpark.RvPark, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryRvParkStore) List(ctx context.Context, filter *types.RvParkFilter) ([]*rvpark.RvPark, error) {
	if filter == nil {
		filter = &types.RvParkFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	}
	return s.InMemoryStore.List(ctx, filter, rvParkFilterFn, func(i, j *rvpark.RvPark) bool {
		return i.Name < j.Name
	})
}

func (s *InMemoryRvParkStore) Count(ctx context.Context, filter *types.RvParkFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, rvParkFilterFn)
}

func (s *InMemoryRvParkStore) Update(ctx context.Context, p *rvpark.RvPark) error {
	return s.InMemoryStore.Update(ctx, p.ID, p)
}

func (s *InMemoryRvParkStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
