package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/askdesk/askdesk/internal/api/docs"
	"github.com/askdesk/askdesk/internal/api/handler"
	"github.com/askdesk/askdesk/internal/api/middleware"
	"github.com/askdesk/askdesk/internal/core/ports"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Log       zerolog.Logger
	Tokens    ports.TokenService
	Auth      ports.AuthService
	Ask       ports.AskService
	Jobs      ports.JobMatcher
	Resumes   ports.ResumeSource
	Readiness *handler.ReadinessHandler

	// JobIntakeRequireAuth puts /job/intake behind the bearer guard.
	JobIntakeRequireAuth bool
	// Registerer receives the HTTP request metrics. Nil selects the default
	// Prometheus registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "askdesk",
		Registerer: deps.Registerer,
		Skipper:    skipOperational,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	askHandler := handler.NewAskHandler(deps.Ask)
	jobHandler := handler.NewJobHandler(deps.Jobs, deps.Resumes)
	requireAuth := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	e.POST("/token", authHandler.Token)

	// --- Question answering ---
	e.POST("/ask", askHandler.Ask, requireAuth)

	// --- Job intake ---
	if deps.JobIntakeRequireAuth {
		e.POST("/job/intake", jobHandler.Intake, requireAuth)
	} else {
		e.POST("/job/intake", jobHandler.Intake)
	}
	e.GET("/resume/source", jobHandler.ResumeSource)

	// --- Health probes (no auth required) ---
	readiness := deps.Readiness
	if readiness == nil {
		readiness = handler.NewReadinessHandler()
	}
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", readiness.Readiness)

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      skipOperational,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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
