package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/api/controllers"
	"github.com/sparklerlabs/fireworks-shop-backend/api/middleware"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	productsvc "github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/config"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/metrics"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.HTTPMetrics

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	Catalog  controllers.CatalogProvider
	Products productsvc.Service
	Orders   ordersvc.Service

	// InvoiceDir, when set, is served read-only under /invoices/.
	InvoiceDir string
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.AllowedOrigins),
	)

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
		"database": deps.DBPinger,
		"redis":    deps.RedisPinger,
	}))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	// Spreadsheet-era contract kept for the deployed storefront/admin pages.
	execSvcs := controllers.ExecServices{
		Catalog:  deps.Catalog,
		Products: deps.Products,
		Orders:   deps.Orders,
	}
	r.Get("/exec", controllers.ExecGet(execSvcs, logg))
	r.Post("/exec", controllers.ExecPost(execSvcs, logg))

	rules := cart.DefaultRules()
	if cfg.Shop.MinimumOrderValue > 0 {
		rules.MinimumOrderValue = decimal.NewFromInt(int64(cfg.Shop.MinimumOrderValue))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog/products", controllers.CatalogList(deps.Catalog, logg))
		r.Post("/cart/quote", controllers.CartQuote(rules, logg))
		r.Post("/orders", controllers.OrderPlace(deps.Orders, logg))
		r.Get("/admins", controllers.AdminContactList(deps.Orders, logg))
	})

	r.Route("/admin/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(deps.Products, logg))
		r.Post("/products", controllers.ProductCreate(deps.Products, logg))
		r.Put("/products/{productID}", controllers.ProductUpdate(deps.Products, logg))
		r.Delete("/products/{productID}", controllers.ProductDelete(deps.Products, logg))
		r.Post("/catalog/refresh", controllers.CatalogRefresh(deps.Catalog, logg))

		r.Get("/orders", controllers.OrderList(deps.Orders, logg))
		r.Get("/orders/export.csv", controllers.OrderExportCSV(deps.Orders, logg))
		r.Get("/orders/{orderID}", controllers.OrderGet(deps.Orders, logg))
		r.Put("/orders/{orderID}/status", controllers.OrderUpdateStatus(deps.Orders, logg))
		r.Post("/orders/{orderID}/invoice", controllers.OrderAttachInvoice(deps.Orders, logg))

		r.Get("/summary", controllers.OrderSummary(deps.Orders, logg))
		r.Get("/summary/export.csv", controllers.SummaryExportCSV(deps.Orders, logg))
	})

	if deps.InvoiceDir != "" {
		fileServer := http.StripPrefix("/invoices/", http.FileServer(http.Dir(deps.InvoiceDir)))
		r.Get("/invoices/*", func(w http.ResponseWriter, req *http.Request) {
			fileServer.ServeHTTP(w, req)
		})
	}

	return r
}
