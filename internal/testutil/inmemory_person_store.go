package testutil

import (
	"context"
	"strings"

	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/types"
)

var _ person.Repository = (*InMemoryPersonStore)(nil)

// InMemoryPersonStore implements person.Repository
type InMemoryPersonStore struct {
	*InMemoryStore[*person.Person]
}

func NewInMemoryPersonStore() *InMemoryPersonStore {
	return &InMemoryPersonStore{
		InMemoryStore: NewInMemoryStore[*person.Person]("Person", func(p *person.Person) *person.Person {
			c := *p
			return &c
		}),
	}
}

func personFilterFn(ctx context.Context, p *person.Person, filter interface{}) bool {
	f, ok := filter.(*types.PersonFilter)
	if !ok || f == nil {
		return true
	}
	if f.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*f.Name)) {
		return false
	}
	if f.Email != nil && !strings.EqualFold(p.Email, *f.Email) {
		return false
	}
	return true
}

func personSortFn(i, j *person.Person) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryPersonStore) Create(ctx context.Context, p *person.Person) error {
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryPersonStore) Get(ctx context.Context, id string) (*person.Person, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryPersonStore) List(ctx context.Context, filter *types.PersonFilter) ([]*person.Person, error) {
	if filter == nil {
		filter = &types.PersonFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	}
	return s.InMemoryStore.List(ctx, filter, personFilterFn, personSortFn)
}

func (s *InMemoryPersonStore) Count(ctx context.Context, filter *types.PersonFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, personFilterFn)
}

func (s *InMemoryPersonStore) Update(ctx context.Context, p *person.Person) error {
	return s.InMemoryStore.Update(ctx, p.ID, p)
}

func (s *InMemoryPersonStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
