package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/cookie"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/handler"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/metrics"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const anonymous = "anonymous"

// Session restores the session cookie on every request and injects the
// result into the echo context. Requests without a valid cookie continue
// as anonymous.
func Session(sessions ports.SessionService, cookieSecure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Restore(c.Request().Context(), cookie.New(c, cookieSecure))

			result := anonymous
			if s.IsLoggedIn() {
				result = s.Role
			}
			metrics.SessionRestoresTotal.WithLabelValues(result).Inc()

			handler.SetSession(c, s)
			return next(c)
		}
	}
}

// RequireLogin rejects anonymous requests.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !handler.CurrentSession(c).IsLoggedIn() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return next(c)
		}
	}
}
