package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Items  *handlers.ItemsHandler
	Cart   *handlers.CartHandler
	Orders *handlers.OrdersHandler
	Gate   *auth.Gate
}

// RegisterRoutes wires HTTP routes. Everything under /api except user creation
// requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/login", cfg.Gate.Login)
	app.Post("/api/user/create", cfg.Users.Create)

	api := app.Group("/api", cfg.Gate.Handle, auth.RequirePrincipal())

	users := api.Group("/user")
	users.Get("/id/:id", cfg.Users.GetByID)
	users.Get("/:username", cfg.Users.GetByUsername)

	items := api.Group("/item")
	items.Get("/", cfg.Items.List)
	items.Get("/name/:name", cfg.Items.ListByName)
	items.Get("/:id", cfg.Items.GetByID)

	cart := api.Group("/cart")
	cart.Post("/addToCart", cfg.Cart.Add)
	cart.Post("/removeFromCart", cfg.Cart.Remove)

	orders := api.Group("/order")
	orders.Post("/submit/:username", cfg.Orders.Submit)
	orders.Get("/history/:username", cfg.Orders.History)
}
