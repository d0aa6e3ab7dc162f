package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	saved := payload{Name: "carrinho", Count: 3}
	require.NoError(t, store.Save(ctx, "otica-cart-storage", &saved))

	var loaded payload
	require.NoError(t, store.Load(ctx, "otica-cart-storage", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestFileStoreMissingNamespace(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out payload
	assert.ErrorIs(t, store.Load(ctx, "nunca-salvo", &out), ErrNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "ns", &payload{Name: "antes", Count: 1}))
	require.NoError(t, store.Save(ctx, "ns", &payload{Name: "depois", Count: 2}))

	var out payload
	require.NoError(t, store.Load(ctx, "ns", &out))
	assert.Equal(t, payload{Name: "depois", Count: 2}, out)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "ns", &payload{Name: "x"}))
	require.NoError(t, store.Delete(ctx, "ns"))

	var out payload
	assert.ErrorIs(t, store.Load(ctx, "ns", &out), ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, "ns"))
}

func TestFileStoreNamespacesWithSeparators(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// Per-owner cart namespaces carry a colon.
	require.NoError(t, store.Save(ctx, "otica-cart-storage:user-1", &payload{Count: 1}))
	require.NoError(t, store.Save(ctx, "otica-cart-storage:user-2", &payload{Count: 2}))

	var first, second payload
	require.NoError(t, store.Load(ctx, "otica-cart-storage:user-1", &first))
	require.NoError(t, store.Load(ctx, "otica-cart-storage:user-2", &second))
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 2, second.Count)
}
