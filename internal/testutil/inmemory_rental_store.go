package testutil

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/rental"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
)

var _ rental.Repository = (*InMemoryRentalStore)(nil)

// InMemoryRentalStore implements rental.Repository
type InMemoryRentalStore struct {
	*InMemoryStore[*rental.Rental]
}

func NewInMemoryRentalStore() *InMemoryRentalStore {
	return &InMemoryRentalStore{
		InMemoryStore: NewInMemoryStore[*rental.Rental]("Rental", copyRental),
	}
}

func copyRental(r *rental.Rental) *rental.Rental {
	c := *r
	if r.EndDate != nil {
		c.EndDate = lo.ToPtr(*r.EndDate)
	}
	if r.TotalDays != nil {
		c.TotalDays = lo.ToPtr(*r.TotalDays)
	}
	return &c
}

func rentalFilterFn(ctx context.Context, r *rental.Rental, filter interface{}) bool {
	f, ok := filter.(*types.RentalFilter)
	if !ok || f == nil {
		return true
	}
	if f.PaymentStatus != nil && r.PaymentStatus != *f.PaymentStatus {
		return false
	}
	if f.PersonID != nil && r.PersonID != *f.PersonID {
		return false
	}
	if f.SpotID != nil && r.SpotID != *f.SpotID {
		return false
	}
	if f.ActiveOnly && !r.IsActive() {
		return false
	}
	return true
}

// newest start first, matching the default listing order
func rentalSortFn(i, j *rental.Rental) bool {
	if !i.StartDate.Equal(j.StartDate) {
		return i.StartDate.After(j.StartDate)
	}
	return i.ID > j.ID
}

func (s *InMemoryRentalStore) Create(ctx context.Context, r *rental.Rental) error {
	if r == nil {
		return ierr.NewError("rental cannot be nil").
			WithHint("Rental cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.checkActive(ctx, r); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, r.ID, r)
}

func (s *InMemoryRentalStore) Get(ctx context.Context, id string) (*rental.Rental, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryRentalStore) GetForUpdate(ctx context.Context, id string) (*rental.Rental, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryRentalStore) GetActiveBySpot(ctx context.Context, spotID string) (*rental.Rental, error) {
	r, ok := s.Find(ctx, func(r *rental.Rental) bool {
		return r.SpotID == spotID && r.IsActive()
	})
	if !ok {
		return nil, ierr.NewErrorf("no active rental for spot %s", spotID).
			WithHint("Rental not found").
			Mark(ierr.ErrNotFound)
	}
	return r, nil
}

func (s *InMemoryRentalStore) List(ctx context.Context, filter *types.RentalFilter) ([]*rental.Rental, error) {
	if filter == nil {
		filter = types.NewNoLimitRentalFilter()
	}
	return s.InMemoryStore.List(ctx, filter, rentalFilterFn, rentalSortFn)
}

func (s *InMemoryRentalStore) Count(ctx context.Context, filter *types.RentalFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, rentalFilterFn)
}

func (s *InMemoryRentalStore) Update(ctx context.Context, r *rental.Rental) error {
	if err := s.checkActive(ctx, r); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, r.ID, r)
}

func (s *InMemoryRentalStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// checkActive mirrors the partial unique index on active rentals per spot
func (s *InMemoryRentalStore) checkActive(ctx context.Context, r *rental.Rental) error {
	if !r.IsActive() {
		return nil
	}
	_, taken := s.Find(ctx, func(other *rental.Rental) bool {
		return other.ID != r.ID && other.SpotID == r.SpotID && other.IsActive()
	})
	if taken {
		return ierr.NewErrorf("spot %s already has an active rental", r.SpotID).
			WithHint("Rental already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}
