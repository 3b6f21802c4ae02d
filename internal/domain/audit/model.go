package audit

import (
	"time"

	"github.com/flexprice/rvpark/internal/types"
)

// Log is one entry of the audit trail
type Log struct {
	ID        string            `db:"id" json:"id"`
	UserID    string            `db:"user_id" json:"user_id"`
	Action    types.AuditAction `db:"action" json:"action"`
	TableName string            `db:"table_name" json:"table_name"`
	// Detail is a JSON document describing the change
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
