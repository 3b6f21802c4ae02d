package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/rvpark/internal/audit"
	"github.com/flexprice/rvpark/internal/types"
)

var _ audit.Recorder = (*MockAuditRecorder)(nil)

// RecordedAudit is one call made to MockAuditRecorder
type RecordedAudit struct {
	UserID string
	Action types.AuditAction
	Table  string
	Detail any
}

// MockAuditRecorder keeps every recorded entry in memory
type MockAuditRecorder struct {
	mu      sync.Mutex
	entries []RecordedAudit
}

func NewMockAuditRecorder() *MockAuditRecorder {
	return &MockAuditRecorder{}
}

func (r *MockAuditRecorder) Record(ctx context.Context, action types.AuditAction, table string, detail any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, RecordedAudit{
		UserID: types.GetUserID(ctx),
		Action: action,
		Table:  table,
		Detail: detail,
	})
}

// Entries returns a copy of what was recorded so far
func (r *MockAuditRecorder) Entries() []RecordedAudit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedAudit(nil), r.entries...)
}

// Actions returns the recorded actions in order
func (r *MockAuditRecorder) Actions() []types.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]types.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func (r *MockAuditRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
