package testutil

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/types"
)

var _ audit.Repository = (*InMemoryAuditLogStore)(nil)

type InMemoryAuditLogStore struct {
	*InMemoryStore[*audit.Log]
}

func NewInMemoryAuditLogStore() *InMemoryAuditLogStore {
	return &InMemoryAuditLogStore{
		InMemoryStore: NewInMemoryStore[*audit.Log]("AuditLog", func(l *audit.Log) *audit.Log {
			c := *l
			return &c
		}),
	}
}

func auditLogFilterFn(ctx context.Context, l *audit.Log, filter interface{}) bool {
	f, ok := filter.(*types.AuditLogFilter)
	if !ok || f == nil {
		return true
	}
	if f.UserID != nil && l.UserID != *f.UserID {
		return false
	}
	if f.Action != nil && l.Action != *f.Action {
		return false
	}
	if f.TableName != nil && l.TableName != *f.TableName {
		return false
	}
	return true
}

func (s *InMemoryAuditLogStore) Create(ctx context.Context, l *audit.Log) error {
	return s.InMemoryStore.Create(ctx, l.ID, l)
}

func (s *InMemoryAuditLogStore) List(ctx context.Context, filter *types.AuditLogFilter) ([]*audit.Log, error) {
	if filter == nil {
		filter = &types.AuditLogFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	}
	return s.InMemoryStore.List(ctx, filter, auditLogFilterFn, func(i, j *audit.Log) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
}

func (s *InMemoryAuditLogStore) Count(ctx context.Context, filter *types.AuditLogFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, auditLogFilterFn)
}
