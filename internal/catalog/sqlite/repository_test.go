package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyluxehaven/storefront/internal/catalog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAssignsIDAndRoundTrips(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalog.Product{
		Name:        "Classic Wristband",
		Description: "A timeless accessory.",
		Price:       24000,
		Image:       "https://picsum.photos/seed/p1/600/400",
		ImageHint:   "leather wristband",
		Category:    "Accessories",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Classic Wristband", got.Name)
	assert.Equal(t, 24000.0, got.Price)
	assert.Equal(t, "leather wristband", got.ImageHint)
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestListIsSortedByName(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Urban Explorer Cap", "Classic Wristband", "Midnight Tote"} {
		_, err := repo.Create(ctx, catalog.Product{Name: name})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Classic Wristband", got[0].Name)
	assert.Equal(t, "Midnight Tote", got[1].Name)
	assert.Equal(t, "Urban Explorer Cap", got[2].Name)
}

func TestUpdatePatchesOnlyPresentFields(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalog.Product{Name: "Classic Wristband", Price: 24000, Category: "Accessories"})
	require.NoError(t, err)

	price := 25500.0
	require.NoError(t, repo.Update(ctx, created.ID, catalog.Patch{Price: &price}))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 25500.0, got.Price)
	assert.Equal(t, "Classic Wristband", got.Name, "patch must not blank other fields")
	assert.Equal(t, "Accessories", got.Category)
}

func TestUpdateEmptyPatchIsNoOp(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalog.Product{Name: "Classic Wristband"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, created.ID, catalog.Patch{}))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Wristband", got.Name)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	repo := openTestRepo(t)
	name := "Renamed"
	err := repo.Update(context.Background(), "missing", catalog.Patch{Name: &name})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteAndCount(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalog.Product{Name: "Classic Wristband"})
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Delete(ctx, created.ID))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), catalog.ErrNotFound)
}
