package redisstate_test

import (
	"testing"

	"neuroload/internal/adapters/out/redisstate"
	"neuroload/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*redisstate.Store, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstate.NewStoreWithClient(client), server
}

func TestStore_SaveAndLoadSnapshot(t *testing.T) {
	ctx := t.Context()
	store, _ := newStore(t)

	payload := []byte(`{"id": "u1", "name": "Asha", "role": "SHIPPER"}`)
	require.NoError(t, store.SaveSnapshot(ctx, ports.SnapshotKeyUser, payload))

	loaded, err := store.LoadSnapshot(ctx, ports.SnapshotKeyUser)
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
}

func TestStore_SaveSnapshot_ReplacesPrevious(t *testing.T) {
	ctx := t.Context()
	store, _ := newStore(t)

	require.NoError(t, store.SaveSnapshot(ctx, ports.SnapshotKeyOrder, []byte(`{"v":1}`)))
	require.NoError(t, store.SaveSnapshot(ctx, ports.SnapshotKeyOrder, []byte(`{"v":2}`)))

	loaded, err := store.LoadSnapshot(ctx, ports.SnapshotKeyOrder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(loaded))
}

func TestStore_LoadSnapshot_EmptySlot(t *testing.T) {
	ctx := t.Context()
	store, _ := newStore(t)

	_, err := store.LoadSnapshot(ctx, ports.SnapshotKeyVehicle)
	require.ErrorIs(t, err, ports.ErrSnapshotNotFound)
}

func TestStore_SnapshotKeysAreIsolated(t *testing.T) {
	ctx := t.Context()
	store, server := newStore(t)

	require.NoError(t, store.SaveSnapshot(ctx, ports.SnapshotKeyUser, []byte(`"user"`)))
	require.NoError(t, store.SaveSnapshot(ctx, ports.SnapshotKeyVehicle, []byte(`"vehicle"`)))

	assert.True(t, server.Exists("neuroload:snapshot:user"))
	assert.True(t, server.Exists("neuroload:snapshot:vehicle"))
	assert.False(t, server.Exists("neuroload:snapshot:order"))
}

func TestStore_ClearSnapshot(t *testing.T) {
	ctx := t.Context()
	store, _ := newStore(t)

	require.NoError(t, store.SaveSnapshot(ctx, ports.SnapshotKeyUser, []byte(`{}`)))
	require.NoError(t, store.ClearSnapshot(ctx, ports.SnapshotKeyUser))

	_, err := store.LoadSnapshot(ctx, ports.SnapshotKeyUser)
	require.ErrorIs(t, err, ports.ErrSnapshotNotFound)

	// Clearing an already empty slot succeeds.
	require.NoError(t, store.ClearSnapshot(ctx, ports.SnapshotKeyUser))
}
