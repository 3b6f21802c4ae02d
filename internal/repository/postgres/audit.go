package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var auditSortColumns = map[string]bool{
	"created_at": true,
	"action":     true,
}

type auditRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAuditRepository(db *postgres.DB, logger *logger.Logger) audit.Repository {
	return &auditRepository{db: db, logger: logger}
}

func (r *auditRepository) Create(ctx context.Context, l *audit.Log) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, table_name, detail, created_at)
		VALUES (:id, :user_id, :action, :table_name, :detail, :created_at)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, l)
	return postgres.TranslateError(err, "Audit log")
}

func (r *auditRepository) where(filter *types.AuditLogFilter) *whereClause {
	w := &whereClause{}
	if filter == nil {
		return w
	}
	if filter.UserID != nil {
		w.add("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		w.add("action = ?", *filter.Action)
	}
	if filter.TableName != nil {
		w.add("table_name = ?", *filter.TableName)
	}
	return w
}

func (r *auditRepository) List(ctx context.Context, filter *types.AuditLogFilter) ([]*audit.Log, error) {
	if filter == nil {
		filter = types.NewAuditLogFilter()
	}
	w := r.where(filter)
	page, pageArgs := orderAndPage(filter.QueryFilter, auditSortColumns, "created_at")

	q := r.db.GetQuerier(ctx)
	logs := make([]*audit.Log, 0)
	err := q.SelectContext(ctx, &logs, q.Rebind("SELECT * FROM audit_logs"+w.String()+page), append(w.args, pageArgs...)...)
	if err != nil {
		return nil, postgres.TranslateError(err, "Audit log")
	}
	return logs, nil
}

func (r *auditRepository) Count(ctx context.Context, filter *types.AuditLogFilter) (int, error) {
	w := r.where(filter)
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM audit_logs"+w.String()), w.args...); err != nil {
		return 0, postgres.TranslateError(err, "Audit log")
	}
	return count, nil
}
