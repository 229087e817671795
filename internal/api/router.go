package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/NischalJogani/PrishaNangalia-CSIA/docs" // swag generated spec

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/handler"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/middleware"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// Deps are the services the router serves.
type Deps struct {
	Logger       zerolog.Logger
	Auth         ports.AuthService
	Sessions     ports.SessionService
	Projects     ports.ProjectService
	Checks       map[string]handler.Checker
	CookieSecure bool
	// UploadLimit caps request bodies on the file routes, e.g. "10M".
	UploadLimit string
}

const defaultUploadLimit = "10M"

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// HTTP metrics use a per-router registry; /metrics gathers it together
	// with the domain metrics on the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "designdesk",
		Subsystem:  "http",
		Registerer: reg,
	}))
	e.Use(middleware.Session(d.Sessions, d.CookieSecure))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.CookieSecure)

	auth := e.Group("/auth")
	auth.POST("/designers/register", authHandler.RegisterDesigner)
	auth.POST("/designers/login", authHandler.LoginDesigner)
	auth.POST("/clients/login", authHandler.LoginClient)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, middleware.RequireLogin())

	// --- Project routes ---
	projectHandler := handler.NewProjectHandler(d.Projects)
	designer := middleware.RBAC(domain.RoleDesigner)
	anyRole := middleware.RBAC(domain.RoleDesigner, domain.RoleClient)

	v1 := e.Group("/v1", middleware.RequireLogin())
	v1.POST("/projects", projectHandler.Create, designer)
	v1.GET("/projects", projectHandler.List, designer)
	v1.GET("/projects/:id", projectHandler.Get, anyRole)
	v1.DELETE("/projects/:id", projectHandler.Delete, designer)

	v1.GET("/projects/:id/tasks", projectHandler.Tasks, anyRole)
	v1.POST("/projects/:id/tasks", projectHandler.CreateTask, designer)
	v1.PATCH("/projects/:id/tasks/:task_id", projectHandler.UpdateTask, designer)
	v1.DELETE("/projects/:id/tasks/:task_id", projectHandler.DeleteTask, designer)

	v1.GET("/projects/:id/budget", projectHandler.Budget, anyRole)
	v1.POST("/projects/:id/budget", projectHandler.CreateBudgetItem, designer)
	v1.GET("/projects/:id/budget.pdf", projectHandler.BudgetPDF, anyRole)
	v1.PATCH("/projects/:id/budget/:item_id", projectHandler.UpdateBudgetItem, designer)
	v1.DELETE("/projects/:id/budget/:item_id", projectHandler.DeleteBudgetItem, designer)

	v1.GET("/projects/:id/timeline", projectHandler.Timeline, anyRole)
	v1.POST("/projects/:id/timeline", projectHandler.CreateMilestone, designer)
	v1.PATCH("/projects/:id/timeline/:milestone_id", projectHandler.UpdateMilestone, designer)
	v1.DELETE("/projects/:id/timeline/:milestone_id", projectHandler.DeleteMilestone, designer)

	client := middleware.RBAC(domain.RoleClient)
	v1.GET("/projects/:id/feedback", projectHandler.Feedback, anyRole)
	v1.POST("/projects/:id/feedback", projectHandler.SubmitFeedback, client)
	v1.PATCH("/projects/:id/feedback/:feedback_id", projectHandler.SetApproval, client)

	limit := d.UploadLimit
	if limit == "" {
		limit = defaultUploadLimit
	}
	files := v1.Group("/projects/:id/files", echomiddleware.BodyLimit(limit))
	files.POST("/:kind", projectHandler.UploadFile, designer)
	files.GET("/:kind", projectHandler.ListFiles, anyRole)
	files.GET("/:kind/:name", projectHandler.DownloadFile, anyRole)
	files.DELETE("/:kind/:name", projectHandler.DeleteFile, designer)

	v1.GET("/me/project", projectHandler.MyProject, client)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
