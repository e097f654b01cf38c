package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/pabloab/zapatillas-api/internal/api/handler"
	"github.com/pabloab/zapatillas-api/internal/api/middleware"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Customers  ports.CustomerService
	Zapatillas ports.ZapatillaService
	Tokens     ports.TokenValidator

	// Readiness checks keyed by dependency name, e.g. "mongodb".
	Checks map[string]handler.DependencyCheck

	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every API route evaluates its access requirement inside the handler.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "zapatillas",
		Registerer: registry,
	}))
	e.Use(middleware.Authenticate(deps.Tokens, deps.Log))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/api/v1")

	// --- Accounts ---
	accountHandler := handler.NewAccountHandler(deps.Accounts)
	v1.GET("/users/me", accountHandler.Me)
	v1.PUT("/users/me", accountHandler.UpdateMe)
	v1.GET("/users/:id", accountHandler.Get)
	v1.PATCH("/users/:id/disable", accountHandler.Disable)
	v1.PATCH("/users/:id/enable", accountHandler.Enable)

	// --- Customers ---
	customerHandler := handler.NewCustomerHandler(deps.Customers)
	v1.GET("/clientes", customerHandler.List)
	v1.POST("/clientes", customerHandler.Create)
	v1.GET("/clientes/:id", customerHandler.Get)
	v1.PUT("/clientes/:id", customerHandler.Update)
	v1.DELETE("/clientes/:id", customerHandler.Delete)

	// --- Catalog ---
	zapatillaHandler := handler.NewZapatillaHandler(deps.Zapatillas)
	v1.GET("/zapatillas", zapatillaHandler.List)
	v1.POST("/zapatillas", zapatillaHandler.Create)
	v1.GET("/zapatillas/:id", zapatillaHandler.Get)
	v1.PUT("/zapatillas/:id", zapatillaHandler.Update)
	v1.PATCH("/zapatillas/:id", zapatillaHandler.Update)
	v1.DELETE("/zapatillas/:id", zapatillaHandler.Delete)

	// --- Health checks, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
