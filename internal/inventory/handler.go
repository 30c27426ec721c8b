package inventory

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nhw-erp/nhw-erp/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

type adjustRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Change    int    `json:"change" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	Reference string `json:"reference" validate:"max=500"`
}

// MountRoutes registers stock ledger routes. Sales and their reversals
// go through billing; this surface covers manual movements.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/stock/adjust", h.adjust)
	r.Get("/stock/history", h.history)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	reason := ChangeReason(req.Reason)
	if reason == ReasonSale || reason == ReasonBillDeleted {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "sale movements are recorded through invoicing")
		return
	}
	entry, err := h.service.ApplyChange(r.Context(), ChangeInput{
		ProductID: req.ProductID,
		Change:    req.Change,
		Reason:    reason,
		Reference: req.Reference,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidReason) || errors.Is(err, ErrZeroChange) {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		h.logger.Error("apply stock change", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID, _ := strconv.ParseInt(q.Get("product_id"), 10, 64)
	limit, _ := strconv.Atoi(q.Get("limit"))

	items, err := h.service.ListHistory(r.Context(), HistoryFilter{ProductID: productID, Limit: limit})
	if err != nil {
		h.logger.Error("list stock history", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}
