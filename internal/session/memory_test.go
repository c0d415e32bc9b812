package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := store.Create(ctx, "alice_smith", 30*time.Minute)
	require.NoError(t, err)
	assert.Len(t, s.ID, 36, "token must be a canonical UUID string")
	assert.Equal(t, "alice_smith", s.Username)
	assert.Equal(t, 30*time.Minute, s.ExpiresAt.Sub(s.CreatedAt))

	got, ok, err := store.Lookup(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s, got)
	assert.False(t, got.Expired(got.CreatedAt.Add(time.Minute)))
}

func TestMemoryStoreLookupUnknown(t *testing.T) {
	_, ok, err := NewMemoryStore().Lookup(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreTokensDoNotCollide(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		s, err := store.Create(ctx, "alice_smith", time.Hour)
		require.NoError(t, err)
		require.False(t, seen[s.ID], "token collision")
		seen[s.ID] = true
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := store.Create(ctx, "alice_smith", time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, ok, err := store.Lookup(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Second delete of the same id must not fail.
	require.NoError(t, store.Delete(ctx, s.ID))
}

func TestSessionExpired(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := Session{CreatedAt: created, ExpiresAt: created.Add(10 * time.Minute)}

	assert.False(t, s.Expired(created))
	assert.False(t, s.Expired(created.Add(10*time.Minute-time.Second)))
	assert.True(t, s.Expired(created.Add(10*time.Minute)), "expiry instant itself counts as expired")
	assert.True(t, s.Expired(created.Add(time.Hour)))
}
