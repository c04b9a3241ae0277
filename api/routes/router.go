package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonvelour/storefront-backend/api/controllers"
	inventorycontrollers "github.com/maisonvelour/storefront-backend/api/controllers/inventory"
	"github.com/maisonvelour/storefront-backend/api/middleware"
	"github.com/maisonvelour/storefront-backend/internal/activity"
	"github.com/maisonvelour/storefront-backend/internal/inventory"
	products "github.com/maisonvelour/storefront-backend/internal/products"
	"github.com/maisonvelour/storefront-backend/pkg/auth/session"
	"github.com/maisonvelour/storefront-backend/pkg/config"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	sessions session.AccessSessionChecker,
	gatherer prometheus.Gatherer,
	inventoryService inventory.Service,
	productService products.Service,
	activityService activity.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisP,
		}))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RecordActivity(activityService, logg))

		r.Route("/api/inventory", func(r chi.Router) {
			r.Use(middleware.RequireCapability(enums.CapabilityInventoryRead, logg))
			r.Get("/trends", inventorycontrollers.Trends(inventoryService, logg))
			r.Get("/alerts", inventorycontrollers.Alerts(inventoryService, logg))
			r.Get("/restock-plan", inventorycontrollers.RestockPlan(inventoryService, logg))
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.With(middleware.RequireCapability(enums.CapabilityInventoryRead, logg)).
					Get("/", controllers.AdminListProducts(productService, logg))
				r.With(middleware.RequireCapability(enums.CapabilityInventoryWrite, logg)).
					Patch("/{productId}/inventory", controllers.AdminUpdateInventory(productService, logg))
			})
			r.With(middleware.RequireCapability(enums.CapabilityActivityRead, logg)).
				Get("/activity", controllers.AdminListActivity(activityService, logg))
		})
	})

	return r
}
