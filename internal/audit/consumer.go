package audit

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/pubsub"
	sentryService "github.com/flexprice/rvpark/internal/sentry"
	"github.com/flexprice/rvpark/internal/types"
)

// Consumer persists published audit entries
type Consumer struct {
	subscriber pubsub.Subscriber
	repo       audit.Repository
	sentry     *sentryService.Service
	logger     *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(
	subscriber pubsub.Subscriber,
	repo audit.Repository,
	sentry *sentryService.Service,
	logger *logger.Logger,
) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		repo:       repo,
		sentry:     sentry,
		logger:     logger,
	}
}

// Start subscribes to the audit topic and persists entries in the background
// until Stop is called.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	messages, err := c.subscriber.Subscribe(ctx, Topic)
	if err != nil {
		cancel()
		return err
	}
	c.cancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for msg := range messages {
			c.handle(ctx, msg)
		}
	}()

	c.logger.Infow("audit consumer started", "topic", Topic)
	return nil
}

// Stop ends the subscription and waits for the in-flight entry
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	// gochannel has no redelivery worth waiting for, so every message is acked
	defer msg.Ack()

	var entry Entry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		c.logger.Errorw("dropping malformed audit entry", "message_id", msg.UUID, "error", err)
		return
	}

	if err := c.repo.Create(ctx, entry.ToLog()); err != nil {
		c.logger.Errorw("failed to persist audit entry",
			"action", entry.Action,
			"table", entry.Table,
			"user_id", entry.UserID,
			"error", err,
		)
		c.sentry.CaptureException(ctx, err)
	}
}

// ToLog converts an entry to the persisted audit log row
func (e *Entry) ToLog() *audit.Log {
	return &audit.Log{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_LOG),
		UserID:    e.UserID,
		Action:    e.Action,
		TableName: e.Table,
		Detail:    string(e.Detail),
		CreatedAt: e.RecordedAt,
	}
}
