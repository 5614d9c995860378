package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyluxehaven/storefront/internal/order/eventlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndListRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	e := eventlog.Event{
		OrderID:    "order-1",
		Kind:       eventlog.KindStatusChanged,
		ActorID:    "admin-1",
		Detail:     "Pending -> Shipped",
		TraceID:    "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:     "00f067aa0ba902b7",
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, &e))

	got, err := repo.ListForOrder(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, eventlog.KindStatusChanged, got[0].Kind)
	assert.Equal(t, "admin-1", got[0].ActorID)
	assert.Equal(t, "Pending -> Shipped", got[0].Detail)
	assert.Equal(t, e.TraceID, got[0].TraceID)
	assert.Equal(t, e.SpanID, got[0].SpanID)
	assert.True(t, got[0].OccurredAt.Equal(e.OccurredAt))
}

func TestListForOrderIsOldestFirstAndScoped(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	events := []eventlog.Event{
		{OrderID: "order-1", Kind: eventlog.KindProofSubmitted, OccurredAt: base.Add(time.Minute)},
		{OrderID: "order-1", Kind: eventlog.KindCreated, OccurredAt: base},
		{OrderID: "order-2", Kind: eventlog.KindCreated, OccurredAt: base},
	}
	for i := range events {
		require.NoError(t, repo.Save(ctx, &events[i]))
	}

	got, err := repo.ListForOrder(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, eventlog.KindCreated, got[0].Kind)
	assert.Equal(t, eventlog.KindProofSubmitted, got[1].Kind)
}

func TestListForUnknownOrderIsEmpty(t *testing.T) {
	repo := openTestRepo(t)

	got, err := repo.ListForOrder(context.Background(), "no-such-order")
	require.NoError(t, err)
	assert.Empty(t, got)
}
