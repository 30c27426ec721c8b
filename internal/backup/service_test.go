package backup

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

type memoryBackups struct {
	tables   map[string]json.RawMessage
	records  []Meta
	payloads map[int64][]byte
	restored *Snapshot
	nextID   int64
}

func newMemoryBackups() *memoryBackups {
	return &memoryBackups{
		tables: map[string]json.RawMessage{
			"company_settings": json.RawMessage(`[{"id":1}]`),
			"products":         json.RawMessage(`[{"id":1,"name":"Chyawanprash 500g"}]`),
			"customers":        json.RawMessage(`[]`),
			"sales_persons":    json.RawMessage(`[]`),
			"bills":            json.RawMessage(`[]`),
			"bill_items":       json.RawMessage(`[]`),
			"stock_history":    json.RawMessage(`[]`),
		},
		payloads: make(map[int64][]byte),
	}
}

func (m *memoryBackups) ExportTable(_ context.Context, table string) (json.RawMessage, error) {
	return m.tables[table], nil
}

func (m *memoryBackups) Insert(_ context.Context, kind string, payload []byte) (int64, error) {
	m.nextID++
	m.records = append(m.records, Meta{ID: m.nextID, Kind: kind, SizeBytes: len(payload), CreatedAt: time.Now()})
	m.payloads[m.nextID] = payload
	return m.nextID, nil
}

func (m *memoryBackups) List(context.Context) ([]Meta, error) {
	out := make([]Meta, len(m.records))
	for i := range m.records {
		out[len(m.records)-1-i] = m.records[i]
	}
	return out, nil
}

func (m *memoryBackups) GetPayload(_ context.Context, id int64) ([]byte, error) {
	p, ok := m.payloads[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (m *memoryBackups) PruneKeepLast(_ context.Context, keep int) (int64, error) {
	if len(m.records) <= keep {
		return 0, nil
	}
	drop := m.records[:len(m.records)-keep]
	for _, meta := range drop {
		delete(m.payloads, meta.ID)
	}
	m.records = m.records[len(m.records)-keep:]
	return int64(len(drop)), nil
}

func (m *memoryBackups) Restore(_ context.Context, snap Snapshot) error {
	m.restored = &snap
	return nil
}

func TestCreateBackupSnapshotsAllTables(t *testing.T) {
	repo := newMemoryBackups()
	svc := NewService(repo, notify.Noop{}, slog.Default())

	meta, err := svc.CreateBackup(context.Background(), KindManual)
	require.NoError(t, err)
	require.Positive(t, meta.SizeBytes)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(repo.payloads[meta.ID], &snap))
	require.Len(t, snap.Tables, len(tableOrder))
	require.JSONEq(t, `[{"id":1,"name":"Chyawanprash 500g"}]`, string(snap.Tables["products"]))

	_, err = svc.CreateBackup(context.Background(), "weekly")
	require.Error(t, err)
}

func TestBackupRetentionKeepsLastSeven(t *testing.T) {
	repo := newMemoryBackups()
	svc := NewService(repo, notify.Noop{}, slog.Default())
	ctx := context.Background()

	for i := 0; i < KeepLast+3; i++ {
		_, err := svc.CreateBackup(ctx, KindAuto)
		require.NoError(t, err)
	}

	metas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, KeepLast)
	// oldest records were dropped
	require.Equal(t, int64(KeepLast+3), metas[0].ID)
	require.Equal(t, int64(4), metas[len(metas)-1].ID)
}

func TestRestoreRoundTrip(t *testing.T) {
	repo := newMemoryBackups()
	svc := NewService(repo, notify.Noop{}, slog.Default())
	ctx := context.Background()

	meta, err := svc.CreateBackup(ctx, KindManual)
	require.NoError(t, err)

	require.NoError(t, svc.Restore(ctx, meta.ID))
	require.NotNil(t, repo.restored)
	require.JSONEq(t, `[{"id":1,"name":"Chyawanprash 500g"}]`, string(repo.restored.Tables["products"]))

	require.ErrorIs(t, svc.Restore(ctx, 999), shared.ErrNotFound)
}

func TestImportRejectsUnknownTables(t *testing.T) {
	repo := newMemoryBackups()
	svc := NewService(repo, notify.Noop{}, slog.Default())
	ctx := context.Background()

	_, err := svc.Import(ctx, []byte(`{"tables":{"secrets":[]}}`))
	require.Error(t, err)

	_, err = svc.Import(ctx, []byte(`not json`))
	require.Error(t, err)

	meta, err := svc.Import(ctx, []byte(`{"created_at":"2024-05-01T00:00:00Z","tables":{"products":[]}}`))
	require.NoError(t, err)
	require.Equal(t, KindManual, meta.Kind)
}
