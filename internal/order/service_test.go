package order_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/order"
	"github.com/kyluxehaven/storefront/internal/order/eventlog"
	"github.com/kyluxehaven/storefront/internal/order/memory"
)

var (
	adminUser = auth.User{ID: "admin-1", DisplayName: "Admin", Role: auth.RoleAdmin}
	jane      = auth.User{ID: "user-jane", DisplayName: "Jane Doe", Role: auth.RoleCustomer}
	john      = auth.User{ID: "user-john", DisplayName: "John Roe", Role: auth.RoleCustomer}
)

// memEventLog is an in-memory eventlog.Repository for asserting on the
// audit trail.
type memEventLog struct {
	mu     sync.Mutex
	events []eventlog.Event
}

func (m *memEventLog) Save(ctx context.Context, e *eventlog.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memEventLog) ListForOrder(ctx context.Context, orderID string) ([]eventlog.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []eventlog.Event
	for _, e := range m.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newService() (*order.Service, *memEventLog) {
	events := &memEventLog{}
	return order.NewService(memory.NewRepository(), events), events
}

func sampleInput() order.CreateInput {
	return order.CreateInput{
		CustomerName:    "Jane Doe",
		ShippingAddress: "12 Palm St, Lagos, 100001",
		Items: []order.Item{
			{ProductID: "p1", Name: "Classic Wristband", Quantity: 2, UnitPrice: 24000},
		},
		TotalAmount: 48000,
	}
}

func TestCreateStartsPendingWithoutProof(t *testing.T) {
	svc, events := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, jane.ID, created.UserID)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.Empty(t, created.PaymentProofURL)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, 48000.0, created.TotalAmount)

	trail, err := events.ListForOrder(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, eventlog.KindCreated, trail[0].Kind)
	assert.Equal(t, jane.ID, trail[0].ActorID)
}

func TestAttachProofSetOnce(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.AttachProof(context.Background(), jane, created.ID, "data:image/png;base64,AAAA"))

	got, err := svc.Get(context.Background(), jane, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got.PaymentProofURL)
	assert.Equal(t, order.StatusPending, got.Status, "proof submission must not change the status")

	err = svc.AttachProof(context.Background(), jane, created.ID, "data:image/png;base64,BBBB")
	assert.ErrorIs(t, err, order.ErrProofAlreadySet)

	got, err = svc.Get(context.Background(), jane, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got.PaymentProofURL, "first proof must survive")
}

func TestSetStatusIsTotal(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	// Any target status succeeds regardless of the prior one, including
	// moves out of terminal states.
	sequence := []order.Status{
		order.StatusDelivered,
		order.StatusPending,
		order.StatusCancelled,
		order.StatusApproved,
		order.StatusShipped,
	}
	for _, to := range sequence {
		require.NoError(t, svc.SetStatus(context.Background(), adminUser, created.ID, to))
		got, err := svc.Get(context.Background(), adminUser, created.ID)
		require.NoError(t, err)
		assert.Equal(t, to, got.Status)
	}
}

func TestSetStatusRejectsInvalidAndNonAdmin(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	err = svc.SetStatus(context.Background(), jane, created.ID, order.StatusShipped)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	err = svc.SetStatus(context.Background(), adminUser, created.ID, order.Status("Refunded"))
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestListForUserFiltersAndSortsNewestFirst(t *testing.T) {
	svc, _ := newService()

	first, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), john, sampleInput())
	require.NoError(t, err)

	mine, err := svc.ListForUser(context.Background(), jane)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest order first")
	assert.Equal(t, first.ID, mine[1].ID)
	for _, o := range mine {
		assert.Equal(t, jane.ID, o.UserID)
	}
}

func TestArchiveHidesFromOwnerListOnly(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.Archive(context.Background(), jane, created.ID))

	mine, err := svc.ListForUser(context.Background(), jane)
	require.NoError(t, err)
	assert.Empty(t, mine)

	all, err := svc.ListAll(context.Background(), adminUser)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Archived)
}

func TestDeleteRemovesFromAllListings(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), jane, created.ID))

	mine, err := svc.ListForUser(context.Background(), jane)
	require.NoError(t, err)
	assert.Empty(t, mine)

	all, err := svc.ListAll(context.Background(), adminUser)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.Get(context.Background(), jane, created.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestGetHidesOtherUsersOrders(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)

	// Another customer sees not-found, not forbidden, so ids cannot be probed.
	_, err = svc.Get(context.Background(), john, created.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)

	// The admin can fetch any order.
	got, err := svc.Get(context.Background(), adminUser, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ListAll(context.Background(), jane)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestStatusChangeRecordsAuditEvent(t *testing.T) {
	svc, events := newService()

	created, err := svc.Create(context.Background(), jane, sampleInput())
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(context.Background(), adminUser, created.ID, order.StatusApproved))

	trail, err := events.ListForOrder(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, eventlog.KindStatusChanged, trail[1].Kind)
	assert.Equal(t, "Pending -> Approved", trail[1].Detail)
	assert.Equal(t, adminUser.ID, trail[1].ActorID)
}
