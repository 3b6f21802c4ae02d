package testutil

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/user"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
)

var _ user.Repository = (*InMemoryUserStore)(nil)

type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User]("User", func(u *user.User) *user.User {
			c := *u
			if u.RvParkID != nil {
				c.RvParkID = lo.ToPtr(*u.RvParkID)
			}
			if u.PersonID != nil {
				c.PersonID = lo.ToPtr(*u.PersonID)
			}
			return &c
		}),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if _, taken := s.Find(ctx, func(other *user.User) bool { return other.Username == u.Username }); taken {
		return ierr.NewErrorf("username %s already exists", u.Username).
			WithHint("Username already taken").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryUserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := s.Find(ctx, func(u *user.User) bool { return u.Username == username })
	if !ok {
		return nil, ierr.NewErrorf("user %s not found", username).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}
