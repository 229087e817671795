package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

const sessionKey = "session"

// SetSession stores the restored session on the request context.
func SetSession(c echo.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}

// CurrentSession returns the session injected by the session middleware,
// or an anonymous one when the middleware did not run.
func CurrentSession(c echo.Context) *domain.Session {
	if s, ok := c.Get(sessionKey).(*domain.Session); ok && s != nil {
		return s
	}
	return &domain.Session{}
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
