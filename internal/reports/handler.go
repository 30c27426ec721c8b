package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nhw-erp/nhw-erp/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/gstr1", h.gstr1)
	r.Get("/reports/tax-summary", h.taxSummary)
	r.Get("/reports/profit-loss", h.profitLoss)
	r.Get("/reports/sales-by-product", h.salesByProduct)
	r.Get("/reports/sales-by-category", h.salesByCategory)
}

func (h *Handler) gstr1(w http.ResponseWriter, r *http.Request) {
	month, err := time.Parse("2006-01", r.URL.Query().Get("month"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "month is required, format YYYY-MM")
		return
	}
	report, err := h.service.GSTR1(r.Context(), month)
	if err != nil {
		h.logger.Error("gstr1 report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) taxSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	report, err := h.service.TaxSummary(r.Context(), from, to)
	if err != nil {
		h.logger.Error("tax summary report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) profitLoss(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	report, err := h.service.ProfitLoss(r.Context(), from, to)
	if err != nil {
		h.logger.Error("profit loss report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) salesByProduct(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.SalesByProduct(r.Context(), from, to)
	if err != nil {
		h.logger.Error("sales by product report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) salesByCategory(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.SalesByCategory(r.Context(), from, to)
	if err != nil {
		h.logger.Error("sales by category report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// parseRange reads from/to query dates; to defaults to today and from
// to thirty days before to.
func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()

	to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid to date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = t.Add(24 * time.Hour)
	}

	from := to.AddDate(0, 0, -31)
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid from date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if !from.Before(to) {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "from must be before to")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
