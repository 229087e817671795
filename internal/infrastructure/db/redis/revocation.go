package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const minRevocationTTL = time.Second

// cmdable is the part of *redis.Client the revocation store uses.
type cmdable interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RevocationStore remembers logged-out session ids until their cookies
// would have expired anyway.
// Key format: session:revoked:<session_id>
type RevocationStore struct {
	client cmdable
	now    func() time.Time
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client cmdable) ports.RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marks the session id as revoked until the given time.
func (s *RevocationStore) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}
	if err := s.client.Set(ctx, s.key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session id was logged out.
func (s *RevocationStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(id string) string {
	return "session:revoked:" + id
}
