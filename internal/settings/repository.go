package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores the singleton company settings record.
type Repository interface {
	Get(ctx context.Context) (CompanySettings, error)
	Save(ctx context.Context, s CompanySettings) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the postgres-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (CompanySettings, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM company_settings WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return CompanySettings{}, fmt.Errorf("settings: get: %w", err)
	}
	var s CompanySettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return CompanySettings{}, fmt.Errorf("settings: decode: %w", err)
	}
	return s, nil
}

func (r *repository) Save(ctx context.Context, s CompanySettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO company_settings (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, raw)
	if err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}
