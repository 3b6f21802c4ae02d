// Package audit records who changed what. Recording is best effort and
// never fails the operation being audited.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/pubsub"
	"github.com/flexprice/rvpark/internal/types"
)

// Topic carries audit entries from recorders to the consumer
const Topic = "audit.log"

// Recorder records an audited mutation. Implementations log and swallow
// their own failures.
type Recorder interface {
	Record(ctx context.Context, action types.AuditAction, table string, detail any)
}

// Entry is the message published for every recorded mutation
type Entry struct {
	UserID     string            `json:"user_id"`
	RequestID  string            `json:"request_id,omitempty"`
	Action     types.AuditAction `json:"action"`
	Table      string            `json:"table"`
	Detail     json.RawMessage   `json:"detail,omitempty"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// NewEntry builds the entry for the actor carried by ctx
func NewEntry(ctx context.Context, action types.AuditAction, table string, detail any) (*Entry, error) {
	var raw json.RawMessage
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Entry{
		UserID:     types.GetUserID(ctx),
		RequestID:  types.GetRequestID(ctx),
		Action:     action,
		Table:      table,
		Detail:     raw,
		RecordedAt: time.Now().UTC(),
	}, nil
}

type publishingRecorder struct {
	publisher pubsub.Publisher
	logger    *logger.Logger
}

// NewPublishingRecorder publishes entries for the audit consumer to persist
func NewPublishingRecorder(publisher pubsub.Publisher, logger *logger.Logger) Recorder {
	return &publishingRecorder{publisher: publisher, logger: logger}
}

func (r *publishingRecorder) Record(ctx context.Context, action types.AuditAction, table string, detail any) {
	entry, err := NewEntry(ctx, action, table, detail)
	if err != nil {
		r.logger.Errorw("failed to encode audit detail",
			"action", action,
			"table", table,
			"error", err,
		)
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		r.logger.Errorw("failed to encode audit entry", "action", action, "error", err)
		return
	}

	// the request context may be cancelled before the consumer runs
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := r.publisher.Publish(context.WithoutCancel(ctx), Topic, msg); err != nil {
		r.logger.Errorw("failed to publish audit entry",
			"action", action,
			"table", table,
			"error", err,
		)
	}
}
