package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nhw-erp/nhw-erp/internal/backup"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
)

// BackupPort triggers a database snapshot.
type BackupPort interface {
	CreateBackup(ctx context.Context, kind string) (backup.Meta, error)
}

// LedgerPort trims the stock history ledger.
type LedgerPort interface {
	Prune(ctx context.Context) error
}

// LowStockPort lists products at or under their minimum stock level.
type LowStockPort interface {
	ListLowStock(ctx context.Context) ([]products.Product, error)
}

// Handlers implements the cron task handlers against the domain
// services.
type Handlers struct {
	Backups  BackupPort
	Ledger   LedgerPort
	LowStock LowStockPort
	Logger   *slog.Logger
}

// HandleAutoBackup processes TaskAutoBackup.
func (h *Handlers) HandleAutoBackup(ctx context.Context, t *asynq.Task) error {
	var payload ScheduledPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	meta, err := h.Backups.CreateBackup(ctx, backup.KindAuto)
	if err != nil {
		h.Logger.Error("auto backup failed", slog.Any("error", err))
		return err
	}
	h.Logger.Info("auto backup completed",
		slog.Int64("backup_id", meta.ID),
		slog.Int("size_bytes", meta.SizeBytes))
	return nil
}

// HandlePruneStockHistory processes TaskPruneStockHistory.
func (h *Handlers) HandlePruneStockHistory(ctx context.Context, t *asynq.Task) error {
	var payload ScheduledPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := h.Ledger.Prune(ctx); err != nil {
		h.Logger.Error("stock history prune failed", slog.Any("error", err))
		return err
	}
	return nil
}

// HandleLowStockScan processes TaskLowStockScan.
func (h *Handlers) HandleLowStockScan(ctx context.Context, t *asynq.Task) error {
	var payload ScheduledPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	low, err := h.LowStock.ListLowStock(ctx)
	if err != nil {
		h.Logger.Error("low stock scan failed", slog.Any("error", err))
		return err
	}
	for _, p := range low {
		h.Logger.Warn("product below minimum stock",
			slog.Int64("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int("current_stock", p.CurrentStock),
			slog.Int("min_stock_level", p.MinStockLevel))
	}
	h.Logger.Info("low stock scan completed", slog.Int("flagged", len(low)))
	return nil
}
