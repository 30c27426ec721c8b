package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nhw-erp/nhw-erp/internal/notify"
)

// Service builds, stores and restores database snapshots.
type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// CreateBackup exports every table concurrently, stores the snapshot
// and prunes old records down to KeepLast.
func (s *Service) CreateBackup(ctx context.Context, kind string) (Meta, error) {
	if kind != KindManual && kind != KindAuto {
		return Meta{}, fmt.Errorf("backup: unknown kind %q", kind)
	}

	snap := Snapshot{
		CreatedAt: time.Now().UTC(),
		Tables:    make(map[string]json.RawMessage, len(tableOrder)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, table := range tableOrder {
		table := table
		g.Go(func() error {
			raw, err := s.repo.ExportTable(gctx, table)
			if err != nil {
				return fmt.Errorf("export %s: %w", table, err)
			}
			mu.Lock()
			snap.Tables[table] = raw
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Meta{}, err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return Meta{}, err
	}
	id, err := s.repo.Insert(ctx, kind, payload)
	if err != nil {
		return Meta{}, err
	}

	pruned, err := s.repo.PruneKeepLast(ctx, KeepLast)
	if err != nil {
		return Meta{}, err
	}
	s.logger.Info("backup created",
		slog.Int64("backup_id", id),
		slog.String("kind", kind),
		slog.Int("size_bytes", len(payload)),
		slog.Int64("pruned", pruned))

	return Meta{ID: id, Kind: kind, SizeBytes: len(payload), CreatedAt: snap.CreatedAt}, nil
}

func (s *Service) List(ctx context.Context) ([]Meta, error) {
	return s.repo.List(ctx)
}

// Export returns the raw snapshot payload for download.
func (s *Service) Export(ctx context.Context, id int64) ([]byte, error) {
	return s.repo.GetPayload(ctx, id)
}

// Restore replaces the live data with a stored snapshot, then
// broadcasts invalidation for every entity.
func (s *Service) Restore(ctx context.Context, id int64) error {
	payload, err := s.repo.GetPayload(ctx, id)
	if err != nil {
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("backup: corrupt snapshot %d: %w", id, err)
	}
	if err := s.repo.Restore(ctx, snap); err != nil {
		return err
	}

	s.logger.Warn("database restored from backup", slog.Int64("backup_id", id))
	for _, entity := range []string{
		notify.EntityProducts, notify.EntityCustomers, notify.EntitySalesPersons,
		notify.EntityBills, notify.EntityStock, notify.EntitySettings,
	} {
		s.notifier.Changed(ctx, entity)
	}
	return nil
}

// Import stores an externally supplied snapshot payload as a manual
// backup after checking it parses.
func (s *Service) Import(ctx context.Context, payload []byte) (Meta, error) {
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Meta{}, fmt.Errorf("backup: invalid snapshot payload: %w", err)
	}
	for table := range snap.Tables {
		if !validTables[table] {
			return Meta{}, fmt.Errorf("backup: snapshot references unknown table %q", table)
		}
	}
	id, err := s.repo.Insert(ctx, KindManual, payload)
	if err != nil {
		return Meta{}, err
	}
	if _, err := s.repo.PruneKeepLast(ctx, KeepLast); err != nil {
		return Meta{}, err
	}
	return Meta{ID: id, Kind: KindManual, SizeBytes: len(payload), CreatedAt: snap.CreatedAt}, nil
}
