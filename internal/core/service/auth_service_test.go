package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

type stubUserRepo struct {
	users  []*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByEmailAndRole(_ context.Context, email, role string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindClientByCode(_ context.Context, email, code string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email && u.ClientCode == code && u.Role == domain.RoleClient {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) ClientCodeExists(_ context.Context, code string) (bool, error) {
	for _, u := range r.users {
		if u.ClientCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	created := cloneUser(user)
	created.ID = r.nextID
	r.nextID++
	r.users = append(r.users, created)
	return cloneUser(created), nil
}

type stubAudit struct {
	events []domain.AuthEvent
	err    error
}

func (a *stubAudit) InsertAuthEvent(_ context.Context, e *domain.AuthEvent) error {
	a.events = append(a.events, *e)
	return a.err
}

func newTestAuthService(repo *stubUserRepo, audit *stubAudit) *AuthService {
	cfg := AuthConfig{Policy: DefaultPasswordPolicy(), BcryptCost: bcrypt.MinCost}
	if audit == nil {
		return NewAuthService(repo, nil, cfg, zerolog.Nop())
	}
	return NewAuthService(repo, audit, cfg, zerolog.Nop())
}

func TestAuthService_RegisterAndLoginScenario(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	ann, err := svc.RegisterDesigner(ctx, "Ann", "ann@x.com", "Password1!")
	if err != nil {
		t.Fatalf("RegisterDesigner returned error: %v", err)
	}
	if ann.ID != 1 || ann.Role != domain.RoleDesigner {
		t.Fatalf("unexpected designer: %+v", ann)
	}
	if ann.ClientCode != "" || ann.PasswordHash == "" || ann.PasswordHash == "Password1!" {
		t.Fatalf("designer credentials not set correctly: %+v", ann)
	}

	session, err := svc.LoginDesigner(ctx, "ann@x.com", "Password1!")
	if err != nil {
		t.Fatalf("LoginDesigner returned error: %v", err)
	}
	if !session.IsDesigner() || session.CurrentUserID() != 1 || session.Name != "Ann" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.ID == "" {
		t.Fatalf("expected session id")
	}

	if _, err := svc.LoginDesigner(ctx, "ann@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	bob, code, err := svc.RegisterClient(ctx, "Bob", "bob@x.com")
	if err != nil {
		t.Fatalf("RegisterClient returned error: %v", err)
	}
	if len(code) != DefaultCodeLength {
		t.Fatalf("expected 6 character code, got %q", code)
	}
	if bob.PasswordHash != "" || bob.ClientCode != code || bob.Role != domain.RoleClient {
		t.Fatalf("client credentials not set correctly: %+v", bob)
	}

	clientSession, err := svc.LoginClient(ctx, "bob@x.com", code)
	if err != nil {
		t.Fatalf("LoginClient returned error: %v", err)
	}
	if !clientSession.IsClient() || clientSession.CurrentUserID() != bob.ID {
		t.Fatalf("unexpected client session: %+v", clientSession)
	}
}

func TestAuthService_RegisterDesigner_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	if _, err := svc.RegisterDesigner(ctx, "Ann", "ann@x.com", "Password1!"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	for _, pw := range []string{"Password1!", "Another9Pass", "weak"} {
		if _, err := svc.RegisterDesigner(ctx, "Ann", "ann@x.com", pw); !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("password %q: expected ErrDuplicateEmail, got %v", pw, err)
		}
	}
	if _, _, err := svc.RegisterClient(ctx, "Ann", "ann@x.com"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail for client with designer email, got %v", err)
	}
}

func TestAuthService_RegisterDesigner_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.RegisterDesigner(ctx, "Ann", "not-an-email", "Password1!"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.RegisterDesigner(ctx, "  ", "ann@x.com", "Password1!"); !errors.Is(err, domain.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if _, err := svc.RegisterDesigner(ctx, "Ann", "ann@x.com", "password"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Login_DoesNotRevealEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()
	_, _ = svc.RegisterDesigner(ctx, "Ann", "ann@x.com", "Password1!")

	_, unknown := svc.LoginDesigner(ctx, "ghost@x.com", "Password1!")
	_, wrong := svc.LoginDesigner(ctx, "ann@x.com", "Password2!")
	if unknown != wrong || !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v and %v", unknown, wrong)
	}
}

func TestAuthService_LoginDesigner_RejectsClientAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()
	_, code, _ := svc.RegisterClient(ctx, "Bob", "bob@x.com")

	if _, err := svc.LoginDesigner(ctx, "bob@x.com", code); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginClient_ExactMatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()
	_, _, _ = svc.RegisterClient(ctx, "Bob", "bob@x.com")
	repo.users[0].ClientCode = "AB12CD"

	if _, err := svc.LoginClient(ctx, "bob@x.com", "AB12CD"); err != nil {
		t.Fatalf("expected exact code to succeed, got %v", err)
	}
	for _, code := range []string{"ab12cd", "AB12C", "AB12CD ", ""} {
		if _, err := svc.LoginClient(ctx, "bob@x.com", code); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("code %q: expected ErrInvalidCredentials, got %v", code, err)
		}
	}
	if _, err := svc.LoginClient(ctx, "other@x.com", "AB12CD"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong email, got %v", err)
	}
}

func TestAuthService_PersistenceErrorSurfaces(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	repo.err = domain.ErrPersistence

	if _, err := svc.LoginDesigner(context.Background(), "ann@x.com", "Password1!"); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if _, err := svc.LoginClient(context.Background(), "bob@x.com", "AB12CD"); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if _, err := svc.RegisterDesigner(context.Background(), "Ann", "ann@x.com", "Password1!"); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestAuthService_RecordsAuditTrail(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{err: errors.New("mongo down")}
	svc := newTestAuthService(repo, audit)
	ctx := context.Background()

	if _, err := svc.RegisterDesigner(ctx, "Ann", "ann@x.com", "Password1!"); err != nil {
		t.Fatalf("audit failure must not fail registration: %v", err)
	}
	_, _ = svc.LoginDesigner(ctx, "ann@x.com", "Password1!")
	_, _ = svc.LoginDesigner(ctx, "ann@x.com", "bad")

	want := []domain.AuthEventType{domain.EventRegistered, domain.EventLoginSucceeded, domain.EventLoginFailed}
	if len(audit.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(audit.events))
	}
	for i, typ := range want {
		if audit.events[i].Type != typ {
			t.Fatalf("event %d: expected %s, got %s", i, typ, audit.events[i].Type)
		}
	}
	if audit.events[2].UserID != 0 {
		t.Fatalf("failed login must not carry a user id")
	}
}
