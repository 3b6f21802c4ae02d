package testutil

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/payment"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

var _ payment.Repository = (*InMemoryPaymentStore)(nil)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

// NewInMemoryPaymentStore creates a new in-memory payment repository
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment]("Payment", func(p *payment.Payment) *payment.Payment {
			c := *p
			return &c
		}),
	}
}

func paymentFilterFn(ctx context.Context, p *payment.Payment, filter interface{}) bool {
	f, ok := filter.(*types.PaymentFilter)
	if !ok || f == nil {
		return true
	}
	if f.RentalID != nil && p.RentalID != *f.RentalID {
		return false
	}
	if f.Period != nil && p.Period != *f.Period {
		return false
	}
	return true
}

func paymentSortFn(i, j *payment.Payment) bool {
	if !i.PaymentDate.Equal(j.PaymentDate) {
		return i.PaymentDate.After(j.PaymentDate)
	}
	return i.ID > j.ID
}

// Create stores a new payment
func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.checkPeriod(ctx, p); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

// Get retrieves a payment by ID
func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryPaymentStore) GetByPeriod(ctx context.Context, rentalID, period string) (*payment.Payment, error) {
	p, ok := s.Find(ctx, func(p *payment.Payment) bool {
		return p.RentalID == rentalID && p.Period == period
	})
	if !ok {
		return nil, ierr.NewErrorf("no payment for rental %s in period %s", rentalID, period).
			WithHint("Payment not found").
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = types.NewNoLimitPaymentFilter()
	}
	return s.InMemoryStore.List(ctx, filter, paymentFilterFn, paymentSortFn)
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, paymentFilterFn)
}

// Update updates an existing payment
func (s *InMemoryPaymentStore) Update(ctx context.Context, p *payment.Payment) error {
	if err := s.checkPeriod(ctx, p); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, p.ID, p)
}

// Delete removes a payment
func (s *InMemoryPaymentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryPaymentStore) DeleteByRental(ctx context.Context, rentalID string) error {
	s.DeleteWhere(ctx, func(p *payment.Payment) bool {
		return p.RentalID == rentalID
	})
	return nil
}

// checkPeriod mirrors the unique (rental_id, period) index
func (s *InMemoryPaymentStore) checkPeriod(ctx context.Context, p *payment.Payment) error {
	_, taken := s.Find(ctx, func(other *payment.Payment) bool {
		return other.ID != p.ID && other.RentalID == p.RentalID && other.Period == p.Period
	})
	if taken {
		return ierr.NewErrorf("rental %s already has a payment for %s", p.RentalID, p.Period).
			WithHint("Payment already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}
