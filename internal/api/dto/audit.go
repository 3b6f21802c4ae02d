package dto

import (
	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/types"
)

// ListAuditLogsResponse represents the response for listing audit entries
type ListAuditLogsResponse = types.ListResponse[*audit.Log]
