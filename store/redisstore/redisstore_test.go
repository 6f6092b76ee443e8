package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/poker"
	"github.com/lox/holdem-engine/room"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, ttl), mr
}

func testSnapshot(id string) *room.Snapshot {
	return &room.Snapshot{
		ID:     id,
		Cards:  poker.MustParseCards("2s7d9hJcQd"),
		Street: room.Turn,
		Players: []room.PlayerSnapshot{
			{ID: "alice", Balance: 100, Cards: poker.MustParseCards("AsAh"), HasTurned: true},
			{ID: "bob", Balance: 50, BetAmount: 10, HasFolded: true},
		},
	}
}

func TestGetSetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, room.ErrNotFound)

	snap := testSnapshot("table-1")
	require.NoError(t, store.Set(ctx, "table-1", snap))
	assert.True(t, mr.Exists("room:table-1"))

	got, err := store.Get(ctx, "table-1")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Street, got.Street)
	assert.Equal(t, snap.Cards, got.Cards)
	assert.Equal(t, snap.Players, got.Players)

	require.NoError(t, store.Delete(ctx, "table-1"))
	_, err = store.Get(ctx, "table-1")
	assert.ErrorIs(t, err, room.ErrNotFound)

	// deleting a missing id is fine
	require.NoError(t, store.Delete(ctx, "table-1"))
}

func TestDefaultTTLApplied(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	require.NoError(t, store.Set(ctx, "table-1", testSnapshot("table-1")))
	assert.Equal(t, DefaultTTL, mr.TTL("room:table-1"))
}

func TestNegativeTTLDisablesExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestStore(t, -1)

	require.NoError(t, store.Set(ctx, "table-1", testSnapshot("table-1")))
	assert.Zero(t, mr.TTL("room:table-1"))
}

func TestSnapshotExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	require.NoError(t, store.Set(ctx, "table-1", testSnapshot("table-1")))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "table-1")
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestCorruptValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	require.NoError(t, mr.Set("room:table-1", "not json"))

	_, err := store.Get(ctx, "table-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, room.ErrNotFound)
}
