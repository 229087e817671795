package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const (
	DefaultCookieName  = "interior_design_session"
	DefaultExpiryDays  = 30
	DefaultSessionTTL  = 12 * time.Hour
	defaultTokenIssuer = "designdesk"
)

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	Secret     []byte
	CookieName string
	// ExpiryDays is the lifetime of a remembered session.
	ExpiryDays int
	// TTL bounds a browser-session cookie that was not remembered.
	TTL    time.Duration
	Issuer string
}

type sessionClaims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager mirrors sessions into HS256-signed cookies and rebuilds
// them on later requests without touching the user store.
type SessionManager struct {
	cfg     SessionConfig
	revoked ports.RevocationStore
	audit   ports.AuditRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewSessionManager(cfg SessionConfig, revoked ports.RevocationStore, audit ports.AuditRepository, logger zerolog.Logger) *SessionManager {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.ExpiryDays <= 0 {
		cfg.ExpiryDays = DefaultExpiryDays
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultTokenIssuer
	}
	return &SessionManager{
		cfg:     cfg,
		revoked: revoked,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for issuing and validating cookies.
func (m *SessionManager) SetClock(now func() time.Time) { m.now = now }

// CookieName is the name of the session cookie.
func (m *SessionManager) CookieName() string { return m.cfg.CookieName }

func (m *SessionManager) Save(_ context.Context, cookies ports.CookieStore, s *domain.Session, remember bool) error {
	if !s.IsLoggedIn() {
		return domain.ErrUnauthenticated
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	now := m.now()
	days := 0
	expires := now.Add(m.cfg.TTL)
	if remember {
		days = m.cfg.ExpiryDays
		expires = now.AddDate(0, 0, days)
	}
	s.ExpiresAt = expires.Truncate(time.Second)

	claims := sessionClaims{
		Role:  s.Role,
		Name:  s.Name,
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   strconv.FormatInt(s.UserID, 10),
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	cookies.Set(m.cfg.CookieName, token, days)
	return nil
}

func (m *SessionManager) Restore(ctx context.Context, cookies ports.CookieStore) *domain.Session {
	value, ok := cookies.Get(m.cfg.CookieName)
	if !ok || value == "" {
		return &domain.Session{}
	}

	s, err := m.parse(value)
	if err != nil {
		m.logger.Debug().Err(err).Msg("discarding session cookie")
		cookies.Delete(m.cfg.CookieName)
		return &domain.Session{}
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(ctx, s.ID)
		if err != nil {
			// Fail closed but keep the cookie for when the store is back.
			m.logger.Warn().Err(err).Msg("revocation check failed")
			return &domain.Session{}
		}
		if revoked {
			cookies.Delete(m.cfg.CookieName)
			return &domain.Session{}
		}
	}

	return s
}

func (m *SessionManager) Logout(ctx context.Context, cookies ports.CookieStore, s *domain.Session) error {
	cookies.Delete(m.cfg.CookieName)
	if !s.IsLoggedIn() {
		return nil
	}

	var err error
	if m.revoked != nil && s.ID != "" && s.ExpiresAt.After(m.now()) {
		if rerr := m.revoked.Revoke(ctx, s.ID, s.ExpiresAt); rerr != nil {
			err = fmt.Errorf("revoke session: %w", rerr)
		}
	}

	m.logger.Info().Int64("user_id", s.UserID).Str("role", s.Role).Msg("logged out")
	m.record(ctx, domain.EventLogout, s)
	s.Clear()
	return err
}

func (m *SessionManager) parse(value string) (*domain.Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(value, claims,
		func(*jwt.Token) (any, error) { return m.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, errors.New("session cookie has no user")
	}
	if !domain.ValidRole(claims.Role) || claims.ID == "" {
		return nil, errors.New("session cookie has unknown role or id")
	}

	return &domain.Session{
		ID:        claims.ID,
		LoggedIn:  true,
		UserID:    userID,
		Role:      claims.Role,
		Name:      claims.Name,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (m *SessionManager) record(ctx context.Context, typ domain.AuthEventType, s *domain.Session) {
	if m.audit == nil {
		return
	}
	err := m.audit.InsertAuthEvent(ctx, &domain.AuthEvent{
		Type:      typ,
		UserID:    s.UserID,
		Role:      s.Role,
		Email:     s.Email,
		Timestamp: m.now().UTC(),
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("event", string(typ)).Msg("failed to record auth event")
	}
}
