package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/nectarnook/catalog-api/docs" // swagger spec registration
	"github.com/nectarnook/catalog-api/internal/api/handler"
	"github.com/nectarnook/catalog-api/internal/api/middleware"
	"github.com/nectarnook/catalog-api/internal/core/service"
	"github.com/nectarnook/catalog-api/internal/infrastructure/config"
	"github.com/nectarnook/catalog-api/internal/infrastructure/db/postgres"
)

// corsAllowOrigins lists the browser frontends allowed to call the API with
// credentials. Local dev servers only; the deployed frontend sits behind the
// same origin.
var corsAllowOrigins = []string{
	"http://localhost",
	"http://localhost:8000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     corsAllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	productRepo := postgres.NewProductRepository(db)
	catalogService := service.NewCatalogService(productRepo, log)
	productHandler := handler.NewProductHandler(catalogService)

	authRepo := postgres.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	authHandler := handler.NewAuthHandler(authService)

	// Token verification exists but is historically not wired to product
	// routes; ENFORCE_PRODUCT_AUTH turns on the intended gating of mutating
	// endpoints without touching the read side.
	authMiddleware := middleware.Auth(authService)
	mutating := []echo.MiddlewareFunc{}
	if cfg.EnforceProductAuth {
		mutating = append(mutating, authMiddleware)
	}

	// --- Product routes ---
	e.GET("/products/:id", productHandler.Get)
	e.GET("/products/", productHandler.List)
	e.POST("/products/", productHandler.Create, mutating...)
	e.PUT("/products/:id", productHandler.Update, mutating...)
	e.DELETE("/products/:id", productHandler.Delete, mutating...)

	// --- Auth routes ---
	e.POST("/auth/users/", authHandler.Register)
	e.POST("/auth/token", authHandler.Token)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
