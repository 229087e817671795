package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

type stubAuthService struct {
	registerDesignerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginDesignerFn    func(ctx context.Context, email, password string) (*domain.Session, error)
	loginClientFn      func(ctx context.Context, email, code string) (*domain.Session, error)
}

func (s *stubAuthService) RegisterDesigner(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerDesignerFn(ctx, name, email, password)
}

func (s *stubAuthService) RegisterClient(context.Context, string, string) (*domain.User, string, error) {
	return nil, "", errors.New("not used")
}

func (s *stubAuthService) LoginDesigner(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginDesignerFn(ctx, email, password)
}

func (s *stubAuthService) LoginClient(ctx context.Context, email, code string) (*domain.Session, error) {
	return s.loginClientFn(ctx, email, code)
}

type stubSessions struct {
	saved     *domain.Session
	remember  bool
	loggedOut bool
	logoutErr error
}

func (s *stubSessions) Save(_ context.Context, cookies ports.CookieStore, sess *domain.Session, remember bool) error {
	s.saved, s.remember = sess, remember
	days := 0
	if remember {
		days = 30
	}
	cookies.Set("interior_design_session", "signed", days)
	return nil
}

func (s *stubSessions) Restore(context.Context, ports.CookieStore) *domain.Session {
	return &domain.Session{}
}

func (s *stubSessions) Logout(_ context.Context, cookies ports.CookieStore, sess *domain.Session) error {
	cookies.Delete("interior_design_session")
	s.loggedOut = sess.IsLoggedIn()
	sess.Clear()
	return s.logoutErr
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_RegisterDesigner_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerDesignerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			if name != "Ann" || email != "ann@x.com" || password != "Password1!" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: 1, Name: name, Email: email, Role: domain.RoleDesigner, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{}, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/designers/register", `{"name":"Ann","email":"ann@x.com","password":"Password1!"}`), rec)

	if err := handler.RegisterDesigner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user := resp["user"]
	if user["email"] != "ann@x.com" || user["role"] != "designer" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_RegisterDesigner_ServiceError(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerDesignerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{}, false)

	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"name":"Ann","email":"ann@x.com","password":"Password1!"}`), httptest.NewRecorder())
	if err := handler.RegisterDesigner(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_RegisterDesigner_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerDesignerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{}, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", "not-json"), rec)
	_ = handler.RegisterDesigner(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/", `{"name":"Ann"}`), httptest.NewRecorder())
	err := handler.RegisterDesigner(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 validation error, got %v", err)
	}
	if !strings.Contains(he.Message.(string), "email is required") {
		t.Fatalf("unexpected validation message: %v", he.Message)
	}
}

func TestAuthHandler_LoginDesigner_SetsCookie(t *testing.T) {
	e := newTestEcho()
	session := domain.NewSession(&domain.User{ID: 1, Name: "Ann", Email: "ann@x.com", Role: domain.RoleDesigner}, "sid", time.Time{})
	stub := &stubAuthService{
		loginDesignerFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			if email != "ann@x.com" || password != "Password1!" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return session, nil
		},
	}
	sessions := &stubSessions{}
	handler := NewAuthHandler(stub, sessions, true)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/designers/login", `{"email":"ann@x.com","password":"Password1!","remember":true}`), rec)

	if err := handler.LoginDesigner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sessions.saved != session || !sessions.remember {
		t.Fatalf("expected remembered session to be saved")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].Secure || cookies[0].MaxAge <= 0 {
		t.Fatalf("expected durable secure cookie, got %+v", cookies)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["logged_in"] != true || resp["role"] != "designer" {
		t.Fatalf("unexpected session payload: %+v", resp)
	}
	if _, leaked := resp["id"]; leaked {
		t.Fatalf("session id must not be serialized")
	}
}

func TestAuthHandler_LoginDesigner_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginDesignerFn: func(context.Context, string, string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &stubSessions{}
	handler := NewAuthHandler(stub, sessions, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"email":"ann@x.com","password":"bad"}`), rec)
	if err := handler.LoginDesigner(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.saved != nil || len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not write a session")
	}
}

func TestAuthHandler_LoginClient_BrowserSession(t *testing.T) {
	e := newTestEcho()
	session := domain.NewSession(&domain.User{ID: 2, Name: "Bob", Email: "bob@x.com", Role: domain.RoleClient}, "sid", time.Time{})
	stub := &stubAuthService{
		loginClientFn: func(ctx context.Context, email, code string) (*domain.Session, error) {
			if code != "AB12CD" {
				t.Fatalf("unexpected code %q", code)
			}
			return session, nil
		},
	}
	sessions := &stubSessions{}
	handler := NewAuthHandler(stub, sessions, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/clients/login", `{"email":"bob@x.com","code":"AB12CD"}`), rec)
	if err := handler.LoginClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if sessions.remember {
		t.Fatalf("expected browser-session cookie")
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 1 || cookies[0].MaxAge != 0 {
		t.Fatalf("expected browser-session cookie, got %+v", cookies)
	}
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	e := newTestEcho()
	sessions := &stubSessions{}
	handler := NewAuthHandler(&stubAuthService{}, sessions, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)
	SetSession(c, domain.NewSession(&domain.User{ID: 1, Role: domain.RoleDesigner}, "sid", time.Time{}))
	if err := handler.Me(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from Me, got %d (%v)", rec.Code, err)
	}

	rec = httptest.NewRecorder()
	c2 := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)
	SetSession(c2, CurrentSession(c))
	if err := handler.Logout(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !sessions.loggedOut {
		t.Fatalf("expected 204 logout, got %d", rec.Code)
	}
	if err := handler.Me(c2); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestAuthHandler_LogoutRevokeFailure(t *testing.T) {
	e := newTestEcho()
	sessions := &stubSessions{logoutErr: errors.New("redis down")}
	handler := NewAuthHandler(&stubAuthService{}, sessions, false)

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), httptest.NewRecorder())
	SetSession(c, domain.NewSession(&domain.User{ID: 1, Role: domain.RoleDesigner}, "sid", time.Time{}))
	if err := handler.Logout(c); err == nil {
		t.Fatalf("expected revoke error to surface")
	}
}

func TestAuthHandler_LoginRevokesPreviousSession(t *testing.T) {
	e := newTestEcho()
	fresh := domain.NewSession(&domain.User{ID: 1, Name: "Ann", Email: "ann@x.com", Role: domain.RoleDesigner}, "new-sid", time.Time{})
	stub := &stubAuthService{
		loginDesignerFn: func(context.Context, string, string) (*domain.Session, error) { return fresh, nil },
	}
	sessions := &stubSessions{}
	handler := NewAuthHandler(stub, sessions, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/designers/login", `{"email":"ann@x.com","password":"Password1!","remember":true}`), rec)
	prev := domain.NewSession(&domain.User{ID: 1, Role: domain.RoleDesigner}, "old-sid", time.Time{})
	SetSession(c, prev)

	if err := handler.LoginDesigner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !sessions.loggedOut || prev.IsLoggedIn() {
		t.Fatalf("expected the previous session to be revoked")
	}
	if sessions.saved != fresh || CurrentSession(c) != fresh {
		t.Fatalf("expected the new session to replace the old one")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[len(cookies)-1].Value != "signed" || cookies[len(cookies)-1].MaxAge <= 0 {
		t.Fatalf("expected the new cookie to be written last, got %+v", cookies)
	}
}

func TestAuthHandler_LoginStopsWhenRevokeFails(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginClientFn: func(context.Context, string, string) (*domain.Session, error) {
			return domain.NewSession(&domain.User{ID: 2, Role: domain.RoleClient}, "new-sid", time.Time{}), nil
		},
	}
	sessions := &stubSessions{logoutErr: errors.New("redis down")}
	handler := NewAuthHandler(stub, sessions, false)

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/clients/login", `{"email":"bob@x.com","code":"AB12CD"}`), httptest.NewRecorder())
	SetSession(c, domain.NewSession(&domain.User{ID: 2, Role: domain.RoleClient}, "old-sid", time.Time{}))

	if err := handler.LoginClient(c); err == nil {
		t.Fatalf("expected revoke failure to surface")
	}
	if sessions.saved != nil {
		t.Fatalf("new session must not be saved when the old one could not be revoked")
	}
}
