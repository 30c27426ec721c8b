package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/nhw-erp/nhw-erp/internal/backup"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
)

type fakePorts struct {
	backupKinds []string
	pruned      int
	lowStock    []products.Product
}

func (f *fakePorts) CreateBackup(_ context.Context, kind string) (backup.Meta, error) {
	f.backupKinds = append(f.backupKinds, kind)
	return backup.Meta{ID: int64(len(f.backupKinds)), Kind: kind}, nil
}

func (f *fakePorts) Prune(context.Context) error {
	f.pruned++
	return nil
}

func (f *fakePorts) ListLowStock(context.Context) ([]products.Product, error) {
	return f.lowStock, nil
}

func newHandlers(f *fakePorts) *Handlers {
	return &Handlers{Backups: f, Ledger: f, LowStock: f, Logger: slog.Default()}
}

func TestHandleAutoBackup(t *testing.T) {
	ports := &fakePorts{}
	h := newHandlers(ports)

	task, err := NewAutoBackupTask(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, h.HandleAutoBackup(context.Background(), task))
	require.Equal(t, []string{backup.KindAuto}, ports.backupKinds)

	// corrupt payload is dropped, not retried
	bad := asynq.NewTask(TaskAutoBackup, []byte("{"))
	require.ErrorIs(t, h.HandleAutoBackup(context.Background(), bad), asynq.SkipRetry)
	require.Len(t, ports.backupKinds, 1)
}

func TestHandlePruneStockHistory(t *testing.T) {
	ports := &fakePorts{}
	h := newHandlers(ports)

	task, err := NewPruneStockHistoryTask(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, h.HandlePruneStockHistory(context.Background(), task))
	require.Equal(t, 1, ports.pruned)
}

func TestHandleLowStockScan(t *testing.T) {
	ports := &fakePorts{lowStock: []products.Product{
		{ID: 1, Name: "Chyawanprash 500g", CurrentStock: 2, MinStockLevel: 5},
	}}
	h := newHandlers(ports)

	task, err := NewLowStockScanTask(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, h.HandleLowStockScan(context.Background(), task))
}
