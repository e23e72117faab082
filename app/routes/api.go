package routes

import (
	"github.com/shashiranjanraj/servicehub/app/controllers"
	"github.com/shashiranjanraj/servicehub/pkg/ctx"
	"github.com/shashiranjanraj/servicehub/pkg/middleware"
	"github.com/shashiranjanraj/servicehub/pkg/router"
)

// Controllers groups the handlers mounted by RegisterAPI.
type Controllers struct {
	Auth     *controllers.AuthController
	Orders   *controllers.OrderController
	Services *controllers.ServiceController
	Health   *controllers.HealthController
}

func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/healthz", "health", ctx.Wrap(c.Health.Show))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	authGroup.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	authGroup.Post("/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))

	api.Get("/services", "services.index", ctx.Wrap(c.Services.Index))

	orders := api.Group("/orders", middleware.RequireIdentity)
	orders.Get("/", "orders.index", ctx.Wrap(c.Orders.Index))
	orders.Post("/", "orders.store", ctx.Wrap(c.Orders.Store))
}
