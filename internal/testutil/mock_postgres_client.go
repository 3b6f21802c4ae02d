package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactions against in-memory stores. Transactions
// are serialized, and a transaction that fails puts every store back the way
// it found it.
type MockPostgresClient struct {
	mu     sync.Mutex
	stores []Snapshotter
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger, stores ...Snapshotter) *MockPostgresClient {
	return &MockPostgresClient{
		stores: stores,
		logger: logger,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) (err error) {
	// If we're already in a transaction, reuse it
	if _, ok := ctx.Value(types.CtxDBTransaction).(string); ok {
		return fn(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	snapshots := make([]any, len(c.stores))
	for i, store := range c.stores {
		snapshots[i] = store.Snapshot()
	}

	txID := types.GenerateUUID()
	defer func() {
		if p := recover(); p != nil {
			c.restore(snapshots)
			panic(p)
		}
		if err != nil {
			c.logger.Debugw("rolling back mock transaction", "tx_id", txID, "error", err)
			c.restore(snapshots)
		}
	}()

	return fn(context.WithValue(ctx, types.CtxDBTransaction, txID))
}

func (c *MockPostgresClient) restore(snapshots []any) {
	for i, store := range c.stores {
		store.Restore(snapshots[i])
	}
}
