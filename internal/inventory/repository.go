package inventory

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// DBTX is the query surface shared by a pool and an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxLedger is the storage surface the ledger needs within one
// transaction. The billing repository also implements it so invoice
// creation can debit stock atomically with the bill insert.
type TxLedger interface {
	GetProductForUpdate(ctx context.Context, id int64) (ProductStock, error)
	UpdateProductStock(ctx context.Context, id int64, stock int) error
	InsertHistory(ctx context.Context, h StockHistory) (int64, error)
	PruneHistory(ctx context.Context, keep int) error
}

// Repository persists the stock ledger in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxLedger) error) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	if err := fn(ctx, NewTxLedger(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// ListHistory returns ledger entries, newest first.
func (r *Repository) ListHistory(ctx context.Context, filter HistoryFilter) ([]StockHistory, error) {
	limit := filter.Limit
	if limit <= 0 || limit > HistoryRetention {
		limit = HistoryRetention
	}

	query := `SELECT id, ts, product_id, product_name, change_amount, reason, reference
		FROM stock_history`
	args := []interface{}{}
	if filter.ProductID > 0 {
		query += ` WHERE product_id = $1`
		args = append(args, filter.ProductID)
	}
	args = append(args, limit)
	query += ` ORDER BY ts DESC, id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []StockHistory
	for rows.Next() {
		var h StockHistory
		if err := rows.Scan(&h.ID, &h.Timestamp, &h.ProductID, &h.ProductName, &h.ChangeAmount, &h.Reason, &h.Reference); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

type txLedger struct {
	q DBTX
}

// NewTxLedger wraps q (a pool or open transaction) as a TxLedger.
func NewTxLedger(q DBTX) TxLedger {
	return &txLedger{q: q}
}

func (t *txLedger) GetProductForUpdate(ctx context.Context, id int64) (ProductStock, error) {
	var ps ProductStock
	err := t.q.QueryRow(ctx,
		`SELECT id, name, current_stock FROM products WHERE id = $1 FOR UPDATE`, id).
		Scan(&ps.ID, &ps.Name, &ps.CurrentStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProductStock{}, shared.ErrNotFound
	}
	return ps, err
}

func (t *txLedger) UpdateProductStock(ctx context.Context, id int64, stock int) error {
	_, err := t.q.Exec(ctx,
		`UPDATE products SET current_stock = $1, updated_at = now() WHERE id = $2`, stock, id)
	return err
}

func (t *txLedger) InsertHistory(ctx context.Context, h StockHistory) (int64, error) {
	ts := h.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	var id int64
	err := t.q.QueryRow(ctx, `
		INSERT INTO stock_history (ts, product_id, product_name, change_amount, reason, reference)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		ts, h.ProductID, h.ProductName, h.ChangeAmount, h.Reason, h.Reference).Scan(&id)
	return id, err
}

func (t *txLedger) PruneHistory(ctx context.Context, keep int) error {
	_, err := t.q.Exec(ctx, `
		DELETE FROM stock_history WHERE id IN (
			SELECT id FROM stock_history ORDER BY ts DESC, id DESC OFFSET $1
		)`, keep)
	return err
}
