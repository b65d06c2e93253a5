package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/api/handler"
	"github.com/empdir/portal/internal/api/middleware"
	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Guard     ports.AccessGuard
	Dashboard ports.DashboardService
	Profile   ports.ProfileService
	Readiness map[string]handlers.Pinger

	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	SecureCookies bool
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Ops (no browser namespace) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))

	// --- Pages ---
	pages := e.Group("", middleware.SecurityHeaders(), middleware.Tab(deps.SecureCookies))

	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Dashboard)
	employeeHandler := handler.NewEmployeeHandler(deps.Profile)

	pages.GET("/", homeHandler.Landing)
	pages.GET("/login/:role", authHandler.LoginPage)
	pages.POST("/login/:role", authHandler.Login)
	pages.POST("/logout", authHandler.Logout)

	admin := pages.Group("/admin", middleware.RequireRole(deps.Guard, domain.RoleAdmin))
	admin.GET("", adminHandler.Show)
	admin.POST("", adminHandler.Submit)

	employee := pages.Group("/employee", middleware.RequireRole(deps.Guard, domain.RoleEmployee))
	employee.GET("/", employeeHandler.Show)
	employee.GET("/:id", employeeHandler.Show)
	employee.POST("/:id", employeeHandler.Submit)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
