package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhw-erp/nhw-erp/internal/auth"
	"github.com/nhw-erp/nhw-erp/internal/backup"
	"github.com/nhw-erp/nhw-erp/internal/billing"
	"github.com/nhw-erp/nhw-erp/internal/inventory"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
	"github.com/nhw-erp/nhw-erp/internal/platform/httpx"
	"github.com/nhw-erp/nhw-erp/internal/reports"
	"github.com/nhw-erp/nhw-erp/internal/sales/customers"
	"github.com/nhw-erp/nhw-erp/internal/sales/salespersons"
	"github.com/nhw-erp/nhw-erp/internal/settings"
	"github.com/nhw-erp/nhw-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	SessionMiddleware  func(http.Handler) http.Handler
	ProductHandler     *products.Handler
	CustomerHandler    *customers.Handler
	SalesPersonHandler *salespersons.Handler
	BillingHandler     *billing.Handler
	InventoryHandler   *inventory.Handler
	SettingsHandler    *settings.Handler
	ReportsHandler     *reports.Handler
	BackupHandler      *backup.Handler
	JobsHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	params.AuthHandler.MountRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(params.SessionMiddleware)

		params.ProductHandler.MountRoutes(r)
		params.CustomerHandler.MountRoutes(r)
		params.SalesPersonHandler.MountRoutes(r)
		params.BillingHandler.MountRoutes(r)
		params.InventoryHandler.MountRoutes(r)
		params.SettingsHandler.MountRoutes(r)
		params.ReportsHandler.MountRoutes(r)
		params.BackupHandler.MountRoutes(r)
		params.JobsHandler.MountRoutes(r)
	})

	return r
}
