package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// AuthConfig groups the credential settings.
type AuthConfig struct {
	Policy     PasswordPolicy
	BcryptCost int
	Codes      CodeConfig
}

// AuthService implements designer and client registration and login.
type AuthService struct {
	repo     ports.UserRepository
	audit    ports.AuditRepository
	policy   PasswordPolicy
	hasher   *PasswordHasher
	codes    *CodeGenerator
	validate *validator.Validate
	logger   zerolog.Logger

	// Compared against when the email is unknown so both failure paths
	// spend one bcrypt comparison.
	dummyHash string

	newID func() string
	now   func() time.Time
}

func NewAuthService(repo ports.UserRepository, audit ports.AuditRepository, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	hasher := NewPasswordHasher(cfg.BcryptCost)
	dummy, _ := hasher.Hash(uuid.NewString())

	return &AuthService{
		repo:      repo,
		audit:     audit,
		policy:    cfg.Policy,
		hasher:    hasher,
		codes:     NewCodeGenerator(cfg.Codes, repo.ClientCodeExists),
		validate:  validator.New(),
		logger:    logger,
		dummyHash: dummy,
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RegisterDesigner creates a designer account. A duplicate email is
// reported before the password policy so the caller learns the address
// is taken regardless of the password supplied.
func (s *AuthService) RegisterDesigner(ctx context.Context, name, email, password string) (*domain.User, error) {
	name, email, err := s.checkIdentity(ctx, name, email)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleDesigner,
		CreatedAt:    s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("role", domain.RoleDesigner).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("designer registered")
	s.record(ctx, domain.EventRegistered, user.ID, user.Role, user.Email)
	return user, nil
}

// RegisterClient creates a client account with a fresh access code and
// returns the code in plaintext. The code is stored as issued because the
// designer must be able to read it back and relay it.
func (s *AuthService) RegisterClient(ctx context.Context, name, email string) (*domain.User, string, error) {
	name, email, err := s.checkIdentity(ctx, name, email)
	if err != nil {
		return nil, "", err
	}

	code, err := s.codes.Generate(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("access code allocation failed")
		return nil, "", err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Name:       name,
		Email:      email,
		Role:       domain.RoleClient,
		ClientCode: code,
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("role", domain.RoleClient).Msg("failed to create user")
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("client registered")
	s.record(ctx, domain.EventRegistered, user.ID, user.Role, user.Email)
	return user, code, nil
}

// LoginDesigner never reveals whether the email exists: unknown email and
// wrong password both return domain.ErrInvalidCredentials.
func (s *AuthService) LoginDesigner(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)

	user, err := s.repo.FindByEmailAndRole(ctx, email, domain.RoleDesigner)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.hasher.Verify(s.dummyHash, password)
		return nil, s.fail(ctx, domain.RoleDesigner, email)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, s.fail(ctx, domain.RoleDesigner, email)
	}
	return s.succeed(ctx, user), nil
}

// LoginClient matches email and access code exactly, case included.
func (s *AuthService) LoginClient(ctx context.Context, email, code string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || code == "" {
		return nil, s.fail(ctx, domain.RoleClient, email)
	}

	user, err := s.repo.FindClientByCode(ctx, email, code)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, s.fail(ctx, domain.RoleClient, email)
	}
	if user.ClientCode != code || user.Role != domain.RoleClient {
		return nil, s.fail(ctx, domain.RoleClient, email)
	}
	return s.succeed(ctx, user), nil
}

func (s *AuthService) checkIdentity(ctx context.Context, name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return "", "", domain.ErrMissingName
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", "", domain.ErrInvalidEmail
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", "", domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		return "", "", err
	}
	return name, email, nil
}

func (s *AuthService) succeed(ctx context.Context, user *domain.User) *domain.Session {
	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	s.record(ctx, domain.EventLoginSucceeded, user.ID, user.Role, user.Email)
	return domain.NewSession(user, s.newID(), time.Time{})
}

func (s *AuthService) fail(ctx context.Context, role, email string) error {
	s.logger.Info().Str("role", role).Msg("login failed")
	s.record(ctx, domain.EventLoginFailed, 0, role, email)
	return domain.ErrInvalidCredentials
}

// record appends to the audit trail. Failures are logged and never
// affect the caller.
func (s *AuthService) record(ctx context.Context, typ domain.AuthEventType, userID int64, role, email string) {
	if s.audit == nil {
		return
	}
	err := s.audit.InsertAuthEvent(ctx, &domain.AuthEvent{
		Type:      typ,
		UserID:    userID,
		Role:      role,
		Email:     email,
		Timestamp: s.now(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event", string(typ)).Msg("failed to record auth event")
	}
}
