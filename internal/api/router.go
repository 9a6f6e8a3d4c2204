package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookhaven/catalog-system/internal/api/handler"
	"github.com/bookhaven/catalog-system/internal/api/middleware"
	"github.com/bookhaven/catalog-system/internal/core/authz"
	"github.com/bookhaven/catalog-system/internal/core/ports"
	"github.com/bookhaven/catalog-system/internal/core/service"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	AuthService ports.AuthService
	BookService ports.BookService
	Access      *service.AccessControl
	Mongo       *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	auth := middleware.Auth(d.Access)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/change-role/:user_id", authHandler.ChangeRole, auth, middleware.RBAC(authz.OpChangeRole))

	// --- Book routes ---
	bookHandler := handler.NewBookHandler(d.BookService)
	e.GET("/books", bookHandler.List)
	e.GET("/books/:id", bookHandler.Get)
	e.POST("/books", bookHandler.Create, auth, middleware.RBAC(authz.OpAddBook))
	e.PUT("/books/:id", bookHandler.Update, auth, middleware.RBAC(authz.OpMutateBook))
	e.DELETE("/books/:id", bookHandler.Delete, auth, middleware.RBAC(authz.OpMutateBook))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Mongo, d.Redis).Readiness)

	return e
}
