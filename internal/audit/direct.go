package audit

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/types"
)

type directRecorder struct {
	repo   audit.Repository
	logger *logger.Logger
}

// NewDirectRecorder writes entries synchronously outside any transaction.
// cmd tools use it where no consumer runs.
func NewDirectRecorder(repo audit.Repository, logger *logger.Logger) Recorder {
	return &directRecorder{repo: repo, logger: logger}
}

func (r *directRecorder) Record(ctx context.Context, action types.AuditAction, table string, detail any) {
	entry, err := NewEntry(ctx, action, table, detail)
	if err != nil {
		r.logger.Errorw("failed to encode audit detail", "action", action, "error", err)
		return
	}
	if err := r.repo.Create(context.WithoutCancel(ctx), entry.ToLog()); err != nil {
		r.logger.Errorw("failed to persist audit entry", "action", action, "table", table, "error", err)
	}
}
