package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/albaranes/deliverynotes-api/internal/api/handler"
	"github.com/albaranes/deliverynotes-api/internal/api/middleware"
	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth          ports.AuthService
	Passwords     ports.PasswordService
	Users         ports.UserService
	Clients       ports.ClientService
	Projects      ports.ProjectService
	DeliveryNotes ports.DeliveryNoteService
}

type Options struct {
	Log      zerolog.Logger
	Tokens   ports.TokenIssuer
	Accounts middleware.UserFinder
	Services Services
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: opts.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(opts.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := middleware.Auth(opts.Tokens, opts.Accounts, ports.PurposeSession)
	reset := middleware.Auth(opts.Tokens, opts.Accounts, ports.PurposeReset)

	// --- Users ---
	users := handler.NewUserHandler(opts.Services.Auth, opts.Services.Users)
	e.POST("/users/register", users.Register)
	e.POST("/users/login", users.Login)
	u := e.Group("/users", session)
	u.GET("", users.Me)
	u.PUT("/validate", users.Validate)
	u.PUT("/register", users.UpdateProfile)
	u.PUT("/company", users.UpdateCompany)
	u.PATCH("/logo", users.UpdateLogo)
	u.DELETE("", users.Delete)
	u.POST("/invite", users.Invite, middleware.RequireRole(domain.RoleUser, domain.RoleAdmin))

	// --- Password reset ---
	passwords := handler.NewPasswordHandler(opts.Services.Passwords)
	e.POST("/password/getToken", passwords.GetToken)
	e.PUT("/password/changePassword", passwords.ChangePassword, reset)

	// --- Clients ---
	clients := handler.NewClientHandler(opts.Services.Clients)
	cg := e.Group("/client", session)
	cg.POST("", clients.Create)
	cg.GET("", clients.List)
	cg.GET("/:id", clients.Get)
	cg.PUT("/:id", clients.Update)
	cg.DELETE("/:id", clients.Delete)
	cg.PATCH("/restore/:id", clients.Restore)

	// --- Projects ---
	projects := handler.NewProjectHandler(opts.Services.Projects)
	pg := e.Group("/projects", session)
	pg.POST("", projects.Create)
	pg.GET("", projects.List)
	pg.GET("/:id", projects.Get)
	pg.PUT("/:id", projects.Update)
	pg.DELETE("/:id", projects.Delete)
	pg.PATCH("/restore/:id", projects.Restore)

	// --- Delivery notes ---
	notes := handler.NewDeliveryNoteHandler(opts.Services.DeliveryNotes)
	ng := e.Group("/deliverynotes", session)
	ng.POST("", notes.Create)
	ng.GET("", notes.List)
	ng.POST("/sign", notes.Sign)
	ng.GET("/pdf/:id", notes.PDF)
	ng.GET("/:id", notes.Get)
	ng.DELETE("/:id", notes.Delete)
	ng.PATCH("/restore/:id", notes.Restore)

	return e
}

// requestLogger writes one access log line per request through zerolog.
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
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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
