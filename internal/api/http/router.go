package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/ashutosh-050/sweet-shop-service/internal/api/http/handlers"
	"github.com/ashutosh-050/sweet-shop-service/internal/auth"
	"github.com/ashutosh-050/sweet-shop-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Sweets         *handlers.SweetsHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	adminAuth := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminAuth.Get("/all", cfg.Users.ListAll)
	adminAuth.Patch("/promote/:id", cfg.Users.Promote)

	sweets := app.Group("/sweets")
	sweets.Get("/", cfg.Sweets.List)
	sweets.Get("/search", cfg.Sweets.Search)

	adminSweets := sweets.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminSweets.Post("/", cfg.Sweets.Create)
	adminSweets.Delete("/:id", cfg.Sweets.Delete)
	adminSweets.Put("/:id/purchase", cfg.Sweets.Purchase)
	adminSweets.Patch("/:id/restock", cfg.Sweets.Restock)

	orders := app.Group("/orders", cfg.AuthMiddleware.Handle)
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/", cfg.Orders.ListMine)
	orders.Get("/all", cfg.Orders.ListRecent)
}
