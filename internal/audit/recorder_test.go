package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/flexprice/rvpark/internal/audit"
	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/pubsub/memory"
	sentryService "github.com/flexprice/rvpark/internal/sentry"
	"github.com/flexprice/rvpark/internal/testutil"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntryCarriesActor(t *testing.T) {
	ctx := testutil.SetupContext()
	ctx = types.SetUserID(ctx, "user_42")

	entry, err := audit.NewEntry(ctx, types.AuditActionCreateRental, types.AuditTableRentals, map[string]any{
		"rental_id": "rent_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "user_42", entry.UserID)
	assert.Equal(t, types.GetRequestID(ctx), entry.RequestID)
	assert.JSONEq(t, `{"rental_id":"rent_1"}`, string(entry.Detail))

	log := entry.ToLog()
	assert.Equal(t, types.AuditTableRentals, log.TableName)
	assert.Equal(t, types.AuditActionCreateRental, log.Action)
	assert.NotEmpty(t, log.ID)
}

func TestNewEntryRejectsUnencodableDetail(t *testing.T) {
	_, err := audit.NewEntry(context.Background(), types.AuditActionLogin, types.AuditTableUsers, make(chan int))
	assert.Error(t, err)
}

func TestPublishedEntriesArePersisted(t *testing.T) {
	log := logger.NewNoopLogger()
	ps := memory.NewPubSub(log)
	defer ps.Close()

	store := testutil.NewInMemoryAuditLogStore()
	consumer := audit.NewConsumer(ps, store, sentryService.NewSentryService(config.GetDefaultConfig(), log), log)
	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Stop()

	recorder := audit.NewPublishingRecorder(ps, log)

	// a cancelled request still gets audited
	ctx, cancel := context.WithCancel(testutil.SetupContext())
	cancel()
	recorder.Record(ctx, types.AuditActionRegisterPayment, types.AuditTablePayments, map[string]any{
		"payment_id": "pay_1",
		"period":     "2024-03",
	})

	require.Eventually(t, func() bool {
		count, err := store.Count(context.Background(), types.NewAuditLogFilter())
		return err == nil && count == 1
	}, 2*time.Second, 10*time.Millisecond)

	logs, err := store.List(context.Background(), types.NewAuditLogFilter())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.DefaultUserID, logs[0].UserID)
	assert.Equal(t, types.AuditActionRegisterPayment, logs[0].Action)
	assert.Equal(t, types.AuditTablePayments, logs[0].TableName)

	var detail map[string]string
	require.NoError(t, json.Unmarshal([]byte(logs[0].Detail), &detail))
	assert.Equal(t, "2024-03", detail["period"])
}

func TestDirectRecorder(t *testing.T) {
	store := testutil.NewInMemoryAuditLogStore()
	recorder := audit.NewDirectRecorder(store, logger.NewNoopLogger())

	recorder.Record(testutil.SetupContext(), types.AuditActionDeleteSpot, types.AuditTableSpots, nil)

	logs, err := store.List(context.Background(), types.NewAuditLogFilter())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.AuditActionDeleteSpot, logs[0].Action)
	assert.Empty(t, logs[0].Detail)
}
