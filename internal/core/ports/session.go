package ports

import (
	"context"
	"time"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

// CookieStore is the browser cookie jar of the current request.
// expiryDays <= 0 writes a browser-session cookie.
type CookieStore interface {
	Set(name, value string, expiryDays int)
	Get(name string) (string, bool)
	Delete(name string)
}

// RevocationStore remembers logged-out session ids until they would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type SessionService interface {
	// Save mirrors s into a signed cookie. remember selects a durable
	// cookie over a browser-session one.
	Save(ctx context.Context, cookies CookieStore, s *domain.Session, remember bool) error
	// Restore rebuilds the session from the cookie, or returns an anonymous
	// session when the cookie is absent, invalid, expired or revoked.
	Restore(ctx context.Context, cookies CookieStore) *domain.Session
	Logout(ctx context.Context, cookies CookieStore, s *domain.Session) error
}
