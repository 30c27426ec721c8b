package backup

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nhw-erp/nhw-erp/internal/platform/httpx"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// maxImportBytes bounds uploaded snapshot payloads.
const maxImportBytes = 64 << 20

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers backup routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/backups", h.list)
	r.Post("/backups", h.create)
	r.Post("/backups/import", h.importSnapshot)
	r.Get("/backups/{id}/export", h.export)
	r.Post("/backups/{id}/restore", h.restore)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	metas, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list backups", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, metas)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.CreateBackup(r.Context(), KindManual)
	if err != nil {
		h.logger.Error("create backup", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, meta)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid backup id")
		return
	}
	payload, err := h.service.Export(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "backup not found")
		return
	}
	if err != nil {
		h.logger.Error("export backup", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="nhw-backup-`+strconv.FormatInt(id, 10)+`.json"`)
	_, _ = w.Write(payload)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "could not read payload")
		return
	}
	meta, err := h.service.Import(r.Context(), payload)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, meta)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid backup id")
		return
	}
	if err := h.service.Restore(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "backup not found")
			return
		}
		h.logger.Error("restore backup", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
