package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// stubClient implements cmdable for testing.
type stubClient struct {
	keys map[string]time.Duration
	err  error
}

func newStubClient() *stubClient {
	return &stubClient{keys: map[string]time.Duration{}}
}

func (s *stubClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if s.err != nil {
		return redis.NewIntResult(0, s.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := s.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (s *stubClient) Set(_ context.Context, key string, _ interface{}, ttl time.Duration) *redis.StatusCmd {
	if s.err != nil {
		return redis.NewStatusResult("", s.err)
	}
	s.keys[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestRevocationStore(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	client := newStubClient()
	store := &RevocationStore{client: client, now: func() time.Time { return now }}
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "sid-1", now.Add(2*time.Hour)))
	require.Equal(t, 2*time.Hour, client.keys["session:revoked:sid-1"])

	revoked, err = store.IsRevoked(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRevocationStore_MinimumTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	client := newStubClient()
	store := &RevocationStore{client: client, now: func() time.Time { return now }}

	require.NoError(t, store.Revoke(context.Background(), "sid-2", now.Add(-time.Minute)))
	require.Equal(t, minRevocationTTL, client.keys["session:revoked:sid-2"])
}

func TestRevocationStore_Errors(t *testing.T) {
	client := newStubClient()
	client.err = errors.New("connection refused")
	store := NewRevocationStore(client)
	ctx := context.Background()

	require.ErrorIs(t, store.Revoke(ctx, "sid", time.Now().Add(time.Hour)), client.err)
	_, err := store.IsRevoked(ctx, "sid")
	require.ErrorIs(t, err, client.err)
}

func TestConnect_Unreachable(t *testing.T) {
	client, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	require.Nil(t, client)
}
