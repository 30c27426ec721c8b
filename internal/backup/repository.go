package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// Repository persists backup records and moves table data in and out
// of snapshots.
type Repository interface {
	ExportTable(ctx context.Context, table string) (json.RawMessage, error)
	Insert(ctx context.Context, kind string, payload []byte) (int64, error)
	List(ctx context.Context) ([]Meta, error)
	GetPayload(ctx context.Context, id int64) ([]byte, error)
	PruneKeepLast(ctx context.Context, keep int) (int64, error)
	Restore(ctx context.Context, snap Snapshot) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// validTables whitelists identifiers interpolated into export SQL.
var validTables = func() map[string]bool {
	m := make(map[string]bool, len(tableOrder))
	for _, t := range tableOrder {
		m[t] = true
	}
	return m
}()

func (r *repository) ExportTable(ctx context.Context, table string) (json.RawMessage, error) {
	if !validTables[table] {
		return nil, fmt.Errorf("backup: unknown table %q", table)
	}
	var raw json.RawMessage
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(jsonb_agg(to_jsonb(t)), '[]'::jsonb) FROM `+table+` t`).Scan(&raw)
	return raw, err
}

func (r *repository) Insert(ctx context.Context, kind string, payload []byte) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO backups (kind, payload) VALUES ($1, $2) RETURNING id`,
		kind, payload).Scan(&id)
	return id, err
}

func (r *repository) List(ctx context.Context) ([]Meta, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, octet_length(payload), created_at
		FROM backups ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.ID, &m.Kind, &m.SizeBytes, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repository) GetPayload(ctx context.Context, id int64) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT payload FROM backups WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	return payload, err
}

func (r *repository) PruneKeepLast(ctx context.Context, keep int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM backups WHERE id IN (
			SELECT id FROM backups ORDER BY created_at DESC, id DESC OFFSET $1
		)`, keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Restore replaces all snapshot tables with the recorded rows in one
// transaction. Identity sequences are realigned afterwards so new
// inserts continue past the restored ids.
func (r *repository) Restore(ctx context.Context, snap Snapshot) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := len(tableOrder) - 1; i >= 0; i-- {
		if _, err := tx.Exec(ctx, `DELETE FROM `+tableOrder[i]); err != nil {
			return err
		}
	}

	for _, table := range tableOrder {
		raw, ok := snap.Tables[table]
		if !ok {
			continue
		}
		if table == "company_settings" {
			_, err := tx.Exec(ctx, `
				INSERT INTO company_settings
				SELECT * FROM jsonb_populate_recordset(NULL::company_settings, $1)`, raw)
			if err != nil {
				return fmt.Errorf("backup: restore company_settings: %w", err)
			}
			continue
		}
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s OVERRIDING SYSTEM VALUE
			SELECT * FROM jsonb_populate_recordset(NULL::%s, $1)`,
			table, table), raw)
		if err != nil {
			return fmt.Errorf("backup: restore %s: %w", table, err)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(`
			SELECT setval(pg_get_serial_sequence('%s', 'id'),
				COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)`, table, table))
		if err != nil {
			return fmt.Errorf("backup: realign %s sequence: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}
