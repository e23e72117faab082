// Package kernel assembles the HTTP handler: global middleware, session
// resolution and the application routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/servicehub/app/controllers"
	"github.com/shashiranjanraj/servicehub/app/listeners"
	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/app/routes"
	"github.com/shashiranjanraj/servicehub/app/services"
	"github.com/shashiranjanraj/servicehub/pkg/auth"
	"github.com/shashiranjanraj/servicehub/pkg/cache"
	"github.com/shashiranjanraj/servicehub/pkg/event"
	"github.com/shashiranjanraj/servicehub/pkg/metrics"
	"github.com/shashiranjanraj/servicehub/pkg/middleware"
	"github.com/shashiranjanraj/servicehub/pkg/reqid"
	"github.com/shashiranjanraj/servicehub/pkg/response"
	"github.com/shashiranjanraj/servicehub/pkg/router"
	"github.com/shashiranjanraj/servicehub/pkg/session"
)

// Deps are the collaborators the kernel wires into controllers.
type Deps struct {
	Users  services.UserStore
	Orders services.OrderStore
	Health controllers.Pinger
	Cache  cache.Store
	Tokens *auth.TokenService
	Hasher auth.Hasher
	// Events defaults to a bus with the default listeners registered.
	Events *event.Bus

	CookieSecure   bool
	OrdersCacheTTL time.Duration
	Location       *time.Location
	CORSOrigins    []string
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Middleware, outermost first:
//
//  1. metrics   total latency by route pattern
//  2. reqid     request id before anything logs
//  3. Logger    request-scoped logger
//  4. Recovery  panics become 500 with the request id in the log
//  5. CORS
//  6. session   optional identity from the auth_token cookie
func NewHTTPKernel(d Deps) *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(d.CORSOrigins)))
	r.Use(session.Middleware(session.NewResolver(d.Tokens)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", "metrics", metrics.Handler())

	bus := d.Events
	if bus == nil {
		bus = event.New()
		listeners.Register(bus)
	}

	catalog := services.NewCatalogService(models.Catalog)
	cookies := session.Cookies{MaxAge: d.Tokens.TTL(), Secure: d.CookieSecure}

	routes.RegisterAPI(r, routes.Controllers{
		Auth: controllers.NewAuthController(
			services.NewAuthService(d.Users, d.Hasher, d.Tokens).WithEvents(bus), cookies),
		Orders: controllers.NewOrderController(
			services.NewOrderService(d.Orders, catalog, d.Cache, services.OrderOptions{
				CacheTTL: d.OrdersCacheTTL,
				Location: d.Location,
			}).WithEvents(bus)),
		Services: controllers.NewServiceController(catalog),
		Health:   controllers.NewHealthController(d.Health),
	})

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the mounted routes for route:list.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
