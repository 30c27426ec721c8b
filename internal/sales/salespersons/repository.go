package salespersons

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhw-erp/nhw-erp/internal/shared"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*SalesPerson, error)
	List(ctx context.Context, activeOnly bool) ([]SalesPerson, error)
	Create(ctx context.Context, sp SalesPerson) (int64, error)
	Update(ctx context.Context, id int64, sp SalesPerson) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, id int64) (*SalesPerson, error) {
	var sp SalesPerson
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_active, created_at, updated_at FROM sales_persons WHERE id = $1`, id).
		Scan(&sp.ID, &sp.Name, &sp.IsActive, &sp.CreatedAt, &sp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]SalesPerson, error) {
	query := `SELECT id, name, is_active, created_at, updated_at FROM sales_persons`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SalesPerson
	for rows.Next() {
		var sp SalesPerson
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.IsActive, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, sp)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, sp SalesPerson) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO sales_persons (name, is_active) VALUES ($1, $2) RETURNING id`,
		sp.Name, sp.IsActive).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, sp SalesPerson) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales_persons SET name=$1, is_active=$2, updated_at=now() WHERE id=$3`,
		sp.Name, sp.IsActive, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
