package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/handler"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

type stubAuth struct{}

func (stubAuth) RegisterDesigner(context.Context, string, string, string) (*domain.User, error) {
	return nil, domain.ErrDuplicateEmail
}

func (stubAuth) RegisterClient(context.Context, string, string) (*domain.User, string, error) {
	return nil, "", domain.ErrDuplicateEmail
}

func (stubAuth) LoginDesigner(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

func (stubAuth) LoginClient(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

// cookieSessions maps the cookie value straight to a role.
type cookieSessions struct{}

func (cookieSessions) Save(context.Context, ports.CookieStore, *domain.Session, bool) error {
	return nil
}

func (cookieSessions) Restore(_ context.Context, cookies ports.CookieStore) *domain.Session {
	role, ok := cookies.Get("session")
	if !ok || !domain.ValidRole(role) {
		return &domain.Session{}
	}
	return domain.NewSession(&domain.User{ID: 1, Role: role}, "sid", time.Time{})
}

func (cookieSessions) Logout(_ context.Context, cookies ports.CookieStore, s *domain.Session) error {
	cookies.Delete("session")
	s.Clear()
	return nil
}

type stubProjects struct{ ports.ProjectService }

func (stubProjects) ListProjects(context.Context, *domain.Session) ([]domain.Project, error) {
	return []domain.Project{{ID: 7}}, nil
}

func (stubProjects) MyProject(_ context.Context, s *domain.Session) (*domain.Project, error) {
	return &domain.Project{ID: 7, ClientID: s.UserID}, nil
}

func (stubProjects) CreateTask(_ context.Context, _ *domain.Session, projectID int64, in ports.CreateTaskInput) (*domain.Task, error) {
	return &domain.Task{ID: 1, ProjectID: projectID, Title: in.Title}, nil
}

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		Logger:   zerolog.Nop(),
		Auth:     stubAuth{},
		Sessions: cookieSessions{},
		Projects: stubProjects{},
		Checks: map[string]handler.Checker{
			"postgres": func(context.Context) error { return nil },
		},
	})
}

func do(t *testing.T, h http.Handler, method, path, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: role})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Access(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		code   int
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"me anonymous", http.MethodGet, "/auth/me", "", http.StatusUnauthorized},
		{"me designer", http.MethodGet, "/auth/me", domain.RoleDesigner, http.StatusOK},
		{"logout anonymous", http.MethodPost, "/auth/logout", "", http.StatusNoContent},
		{"projects anonymous", http.MethodGet, "/v1/projects", "", http.StatusUnauthorized},
		{"projects client", http.MethodGet, "/v1/projects", domain.RoleClient, http.StatusForbidden},
		{"projects designer", http.MethodGet, "/v1/projects", domain.RoleDesigner, http.StatusOK},
		{"bad id", http.MethodGet, "/v1/projects/abc", domain.RoleDesigner, http.StatusBadRequest},
		{"my project designer", http.MethodGet, "/v1/me/project", domain.RoleDesigner, http.StatusForbidden},
		{"my project client", http.MethodGet, "/v1/me/project", domain.RoleClient, http.StatusOK},
		{"delete as client", http.MethodDelete, "/v1/projects/7", domain.RoleClient, http.StatusForbidden},
		{"add task client", http.MethodPost, "/v1/projects/7/tasks", domain.RoleClient, http.StatusForbidden},
		{"add task designer", http.MethodPost, "/v1/projects/7/tasks", domain.RoleDesigner, http.StatusBadRequest},
		{"delete task client", http.MethodDelete, "/v1/projects/7/tasks/3", domain.RoleClient, http.StatusForbidden},
		{"add budget item client", http.MethodPost, "/v1/projects/7/budget", domain.RoleClient, http.StatusForbidden},
		{"delete budget item bad id", http.MethodDelete, "/v1/projects/7/budget/x", domain.RoleDesigner, http.StatusBadRequest},
		{"milestone client", http.MethodPost, "/v1/projects/7/timeline", domain.RoleClient, http.StatusForbidden},
		{"milestone designer", http.MethodPost, "/v1/projects/7/timeline", domain.RoleDesigner, http.StatusBadRequest},
		{"feedback designer", http.MethodPost, "/v1/projects/7/feedback", domain.RoleDesigner, http.StatusForbidden},
		{"feedback client", http.MethodPost, "/v1/projects/7/feedback", domain.RoleClient, http.StatusBadRequest},
		{"approval designer", http.MethodPatch, "/v1/projects/7/feedback/2", domain.RoleDesigner, http.StatusForbidden},
		{"delete file client", http.MethodDelete, "/v1/projects/7/files/gallery/a.jpg", domain.RoleClient, http.StatusForbidden},
		{"download anonymous", http.MethodGet, "/v1/projects/7/files/gallery/a.jpg", "", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.role, "")
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_LoginErrorsAreUniform(t *testing.T) {
	h := newTestRouter()

	designer := do(t, h, http.MethodPost, "/auth/designers/login", "", `{"email":"ann@x.com","password":"bad"}`)
	client := do(t, h, http.MethodPost, "/auth/clients/login", "", `{"email":"ann@x.com","code":"ZZZZZZ"}`)

	if designer.Code != http.StatusUnauthorized || client.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", designer.Code, client.Code)
	}
	if designer.Body.String() != client.Body.String() {
		t.Fatalf("login failures must not differ: %q vs %q", designer.Body.String(), client.Body.String())
	}

	dup := do(t, h, http.MethodPost, "/auth/designers/register", "", `{"name":"Ann","email":"ann@x.com","password":"Password1!"}`)
	if dup.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", dup.Code)
	}
}

func TestRouter_UploadBodyLimit(t *testing.T) {
	h := NewRouter(Deps{
		Logger:      zerolog.Nop(),
		Auth:        stubAuth{},
		Sessions:    cookieSessions{},
		Projects:    stubProjects{},
		UploadLimit: "1K",
	})

	rec := do(t, h, http.MethodPost, "/v1/projects/7/files/gallery", domain.RoleDesigner, strings.Repeat("x", 2048))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/v1/projects/7/files/gallery", domain.RoleDesigner, "small")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected a small body to reach the handler, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/v1/projects/7/tasks", domain.RoleDesigner, `{"title":"`+strings.Repeat("x", 2048)+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload limit must only apply to file routes, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter()
	_ = do(t, h, http.MethodGet, "/health", "", "")

	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "designdesk_session_restores_total") {
		t.Fatalf("expected domain metrics in output")
	}
}

func TestRouter_NewRouterTwice(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("building a second router panicked: %v", r)
		}
	}()
	_ = newTestRouter()
	_ = newTestRouter()
}
