// Package cookie implements ports.CookieStore on top of an echo request.
package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const day = 24 * time.Hour

// Store reads cookies from the request and writes them to the response.
type Store struct {
	c      echo.Context
	secure bool
}

// New returns the cookie jar of the current request. secure marks written
// cookies as HTTPS-only.
func New(c echo.Context, secure bool) *Store {
	return &Store{c: c, secure: secure}
}

var _ ports.CookieStore = (*Store)(nil)

// Set writes a cookie. expiryDays <= 0 leaves out Expires and Max-Age so
// the browser drops it when it closes.
func (s *Store) Set(name, value string, expiryDays int) {
	ck := s.base(name, value)
	if expiryDays > 0 {
		ck.MaxAge = int((time.Duration(expiryDays) * day).Seconds())
		ck.Expires = time.Now().Add(time.Duration(expiryDays) * day)
	}
	s.c.SetCookie(ck)
}

func (s *Store) Get(name string) (string, bool) {
	ck, err := s.c.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

func (s *Store) Delete(name string) {
	ck := s.base(name, "")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	s.c.SetCookie(ck)
}

func (s *Store) base(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
