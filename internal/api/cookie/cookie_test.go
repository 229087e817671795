package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %s not written", name)
	return nil
}

func TestStore_SetDurable(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	New(c, true).Set("sid", "token", 30)

	ck := responseCookie(t, rec, "sid")
	if ck.Value != "token" || ck.MaxAge != 30*24*60*60 {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode || ck.Path != "/" {
		t.Fatalf("cookie attributes not set: %+v", ck)
	}
}

func TestStore_SetBrowserSession(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	New(c, false).Set("sid", "token", 0)

	ck := responseCookie(t, rec, "sid")
	if ck.MaxAge != 0 || !ck.Expires.IsZero() || ck.Secure {
		t.Fatalf("expected browser-session cookie, got %+v", ck)
	}
}

func TestStore_GetAndDelete(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	store := New(c, false)

	if v, ok := store.Get("sid"); !ok || v != "token" {
		t.Fatalf("expected cookie value, got %q %v", v, ok)
	}
	if _, ok := store.Get("other"); ok {
		t.Fatalf("expected missing cookie")
	}

	store.Delete("sid")
	if ck := responseCookie(t, rec, "sid"); ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("expected expiring cookie, got %+v", ck)
	}
}
