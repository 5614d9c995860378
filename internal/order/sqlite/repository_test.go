package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyluxehaven/storefront/internal/order"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleInput(userID string) order.CreateInput {
	return order.CreateInput{
		UserID:          userID,
		CustomerName:    "Jane Doe",
		ShippingAddress: "12 Palm St, Lagos, 100001",
		Items: []order.Item{
			{ProductID: "p1", Name: "Classic Wristband", Quantity: 2, UnitPrice: 24000, Image: "img"},
		},
		TotalAmount: 48000,
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, 48000.0, got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Classic Wristband", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Empty(t, got.PaymentProofURL)
	assert.False(t, got.Archived)
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestListForUserNewestFirstAndFiltered(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleInput("user-2"))
	require.NoError(t, err)

	got, err := repo.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	// Archiving hides the order from the owner's list but not from the
	// admin's.
	archived := true
	require.NoError(t, repo.Update(ctx, first.ID, order.Patch{Archived: &archived}))

	got, err = repo.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdatePatchesOnlyPresentFields(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)

	status := order.StatusShipped
	require.NoError(t, repo.Update(ctx, created.ID, order.Patch{Status: &status}))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, got.Status)
	assert.Equal(t, "Jane Doe", got.CustomerName, "patch must not blank other fields")

	proof := "data:image/png;base64,AAAA"
	require.NoError(t, repo.Update(ctx, created.ID, order.Patch{PaymentProofURL: &proof}))

	got, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, proof, got.PaymentProofURL)
	assert.Equal(t, order.StatusShipped, got.Status)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	repo := openTestRepo(t)
	status := order.StatusApproved
	err := repo.Update(context.Background(), "missing", order.Patch{Status: &status})
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput("user-1"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), order.ErrNotFound)
}
