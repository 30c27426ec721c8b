package inventory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxLedger) error) error
	ListHistory(ctx context.Context, filter HistoryFilter) ([]StockHistory, error)
}

// Service applies signed stock movements and records ledger entries.
type Service struct {
	repo     RepositoryPort
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService builds Service.
func NewService(repo RepositoryPort, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// ApplyChange applies one signed movement in its own transaction.
// It does not enforce non-negative stock; sale validation happens in
// billing before the ledger is touched.
func (s *Service) ApplyChange(ctx context.Context, input ChangeInput) (StockHistory, error) {
	var entry StockHistory
	err := s.repo.WithTx(ctx, func(ctx context.Context, lg TxLedger) error {
		var err error
		entry, err = Apply(ctx, lg, s.logger, input)
		return err
	})
	if err != nil {
		return StockHistory{}, err
	}
	s.notifier.Changed(ctx, notify.EntityStock)
	s.notifier.Changed(ctx, notify.EntityProducts)
	return entry, nil
}

// ListHistory returns ledger entries, newest first.
func (s *Service) ListHistory(ctx context.Context, filter HistoryFilter) ([]StockHistory, error) {
	return s.repo.ListHistory(ctx, filter)
}

// Prune trims the ledger down to the retention cap. Normal writes
// prune as they go; this covers restores and direct imports.
func (s *Service) Prune(ctx context.Context) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, lg TxLedger) error {
		return lg.PruneHistory(ctx, HistoryRetention)
	})
}

// Apply writes one movement through an open transaction. Billing calls
// this with its own transaction so bill insert and stock debits commit
// or roll back together.
//
// A missing product does not abort the write: the ledger entry is
// recorded with a placeholder name and the inconsistency is logged,
// keeping the audit trail append-only.
func Apply(ctx context.Context, lg TxLedger, logger *slog.Logger, input ChangeInput) (StockHistory, error) {
	if !input.Reason.Valid() {
		return StockHistory{}, ErrInvalidReason
	}
	if input.Change == 0 {
		return StockHistory{}, ErrZeroChange
	}

	productName := UnknownProductName
	product, err := lg.GetProductForUpdate(ctx, input.ProductID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		if logger != nil {
			logger.Warn("stock change references missing product",
				slog.Int64("product_id", input.ProductID),
				slog.String("reason", string(input.Reason)))
		}
	case err != nil:
		return StockHistory{}, err
	default:
		productName = product.Name
		newStock := product.CurrentStock + input.Change
		if err := lg.UpdateProductStock(ctx, input.ProductID, newStock); err != nil {
			return StockHistory{}, err
		}
	}

	entry := StockHistory{
		Timestamp:    time.Now().UTC(),
		ProductID:    input.ProductID,
		ProductName:  productName,
		ChangeAmount: input.Change,
		Reason:       input.Reason,
		Reference:    input.Reference,
	}
	id, err := lg.InsertHistory(ctx, entry)
	if err != nil {
		return StockHistory{}, err
	}
	entry.ID = id

	if err := lg.PruneHistory(ctx, HistoryRetention); err != nil {
		return StockHistory{}, err
	}
	return entry, nil
}
