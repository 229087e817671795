package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/cookie"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/metrics"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionService
	secure      bool
}

// NewAuthHandler wires the login routes. cookieSecure marks the session
// cookie HTTPS-only.
func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, secure: cookieSecure}
}

type registerDesignerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type designerLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type clientLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Remember bool   `json:"remember"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// RegisterDesigner creates a designer account.
//
// @Summary      Register a designer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerDesignerRequest  true  "Designer details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/designers/register [post]
func (h *AuthHandler) RegisterDesigner(c echo.Context) error {
	var req registerDesignerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.RegisterDesigner(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(domain.RoleDesigner).Inc()

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// LoginDesigner checks email and password and starts a session.
//
// @Summary      Designer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      designerLoginRequest  true  "Credentials"
// @Success      200   {object}  domain.Session
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/designers/login [post]
func (h *AuthHandler) LoginDesigner(c echo.Context) error {
	var req designerLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.authService.LoginDesigner(c.Request().Context(), req.Email, req.Password)
	return h.start(c, domain.RoleDesigner, s, req.Remember, err)
}

// LoginClient checks email and access code and starts a session.
//
// @Summary      Client login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      clientLoginRequest  true  "Email and access code"
// @Success      200   {object}  domain.Session
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/clients/login [post]
func (h *AuthHandler) LoginClient(c echo.Context) error {
	var req clientLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.authService.LoginClient(c.Request().Context(), req.Email, req.Code)
	return h.start(c, domain.RoleClient, s, req.Remember, err)
}

// Logout ends the session and removes its cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	s := CurrentSession(c)
	wasLoggedIn := s.IsLoggedIn()
	if err := h.sessions.Logout(c.Request().Context(), cookie.New(c, h.secure), s); err != nil {
		return err
	}
	if wasLoggedIn {
		metrics.LogoutsTotal.Inc()
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Session
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	s := CurrentSession(c)
	if !s.IsLoggedIn() {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AuthHandler) start(c echo.Context, role string, s *domain.Session, remember bool, err error) error {
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		return err
	}
	ctx, jar := c.Request().Context(), cookie.New(c, h.secure)
	// A login over a live session revokes the old session id.
	if prev := CurrentSession(c); prev.IsLoggedIn() {
		if err := h.sessions.Logout(ctx, jar, prev); err != nil {
			return err
		}
	}
	if err := h.sessions.Save(ctx, jar, s, remember); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues(role, "success").Inc()
	SetSession(c, s)
	return c.JSON(http.StatusOK, s)
}
