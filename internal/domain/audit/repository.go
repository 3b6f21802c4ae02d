package audit

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// Repository defines the interface for audit log data access
type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, filter *types.AuditLogFilter) ([]*Log, error)
	Count(ctx context.Context, filter *types.AuditLogFilter) (int, error)
}
