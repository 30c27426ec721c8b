package billing

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhw-erp/nhw-erp/internal/inventory"
)

// ErrDuplicateInvoiceNumber signals a lost race on the invoice number
// unique index. The caller recomputes the number and retries once.
var ErrDuplicateInvoiceNumber = errors.New("billing: invoice number already taken")

// TxRepository is the storage surface available inside one bill
// transaction. It embeds the inventory ledger so the bill insert and
// its stock debits commit or roll back together.
type TxRepository interface {
	inventory.TxLedger

	InvoiceNumbersForYear(ctx context.Context, prefix, fyShort string) ([]string, error)
	InsertBill(ctx context.Context, b *Bill) (int64, error)
	GetBill(ctx context.Context, id int64) (*Bill, error)
	DeleteBill(ctx context.Context, id int64) error
	RewriteCustomerSnapshots(ctx context.Context, fromID, toID int64, name, phone string, address, gstin *string) (int64, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (*Bill, error)
	List(ctx context.Context, filter ListBillsFilter) ([]Bill, int, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	q := &txRepository{q: tx, TxLedger: inventory.NewTxLedger(tx)}
	if err := fn(ctx, q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

const billColumns = `id, invoice_number, bill_date,
	customer_id, customer_name, customer_phone, customer_address, customer_gstin,
	sales_person_id, sales_person_name,
	is_gst_bill, sub_total, taxable_amount, cgst_amount, sgst_amount, igst_amount,
	total_tax, round_off, grand_total, created_at`

func (r *repository) Get(ctx context.Context, id int64) (*Bill, error) {
	return getBill(ctx, r.db, id)
}

func (r *repository) List(ctx context.Context, filter ListBillsFilter) ([]Bill, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.CustomerID > 0 {
		argCount++
		where += ` AND customer_id = $` + strconv.Itoa(argCount)
		args = append(args, filter.CustomerID)
	}
	if filter.From != nil {
		argCount++
		where += ` AND bill_date >= $` + strconv.Itoa(argCount)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		argCount++
		where += ` AND bill_date < $` + strconv.Itoa(argCount)
		args = append(args, *filter.To)
	}
	if filter.IsGSTBill != nil {
		argCount++
		where += ` AND is_gst_bill = $` + strconv.Itoa(argCount)
		args = append(args, *filter.IsGSTBill)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bills`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + billColumns + ` FROM bills` + where + ` ORDER BY bill_date DESC, id DESC`
	if filter.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range bills {
		items, err := listItems(ctx, r.db, bills[i].ID)
		if err != nil {
			return nil, 0, err
		}
		bills[i].Items = items
	}
	return bills, total, nil
}

type txRepository struct {
	inventory.TxLedger
	q inventory.DBTX
}

func (t *txRepository) InvoiceNumbersForYear(ctx context.Context, prefix, fyShort string) ([]string, error) {
	rows, err := t.q.Query(ctx,
		`SELECT invoice_number FROM bills WHERE invoice_number LIKE $1`,
		prefix+"/%/"+fyShort)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var no string
		if err := rows.Scan(&no); err != nil {
			return nil, err
		}
		numbers = append(numbers, no)
	}
	return numbers, rows.Err()
}

func (t *txRepository) InsertBill(ctx context.Context, b *Bill) (int64, error) {
	var id int64
	err := t.q.QueryRow(ctx, `
		INSERT INTO bills (invoice_number, bill_date,
			customer_id, customer_name, customer_phone, customer_address, customer_gstin,
			sales_person_id, sales_person_name,
			is_gst_bill, sub_total, taxable_amount, cgst_amount, sgst_amount, igst_amount,
			total_tax, round_off, grand_total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id`,
		b.InvoiceNumber, b.Date,
		b.CustomerID, b.CustomerName, b.CustomerPhone, b.CustomerAddress, b.CustomerGSTIN,
		b.SalesPersonID, b.SalesPersonName,
		b.IsGSTBill, b.SubTotal, b.TaxableAmount, b.CGSTAmount, b.SGSTAmount, b.IGSTAmount,
		b.TotalTax, b.RoundOff, b.GrandTotal).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateInvoiceNumber
		}
		return 0, err
	}

	for i := range b.Items {
		it := &b.Items[i]
		_, err := t.q.Exec(ctx, `
			INSERT INTO bill_items (bill_id, product_id, product_name, hsn_code, batch_number, expiry_date, quantity, mrp, rate, amount)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			id, it.ProductID, it.ProductName, it.HSNCode, it.BatchNumber, it.ExpiryDate,
			it.Quantity, it.MRP, it.Rate, it.Amount)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (t *txRepository) GetBill(ctx context.Context, id int64) (*Bill, error) {
	return getBill(ctx, t.q, id)
}

func (t *txRepository) DeleteBill(ctx context.Context, id int64) error {
	// bill_items cascade on delete
	tag, err := t.q.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (t *txRepository) RewriteCustomerSnapshots(ctx context.Context, fromID, toID int64, name, phone string, address, gstin *string) (int64, error) {
	tag, err := t.q.Exec(ctx, `
		UPDATE bills SET customer_id=$1, customer_name=$2, customer_phone=$3, customer_address=$4, customer_gstin=$5
		WHERE customer_id=$6`,
		toID, name, phone, address, gstin, fromID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *txRepository) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := t.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

func getBill(ctx context.Context, q inventory.DBTX, id int64) (*Bill, error) {
	row := q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id)
	b, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := listItems(ctx, q, id)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

func listItems(ctx context.Context, q inventory.DBTX, billID int64) ([]BillItem, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, product_name, hsn_code, batch_number, expiry_date, quantity, mrp, rate, amount
		FROM bill_items WHERE bill_id = $1 ORDER BY id`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BillItem
	for rows.Next() {
		var it BillItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.HSNCode, &it.BatchNumber, &it.ExpiryDate,
			&it.Quantity, &it.MRP, &it.Rate, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanBill(row pgx.Row) (Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.InvoiceNumber, &b.Date,
		&b.CustomerID, &b.CustomerName, &b.CustomerPhone, &b.CustomerAddress, &b.CustomerGSTIN,
		&b.SalesPersonID, &b.SalesPersonName,
		&b.IsGSTBill, &b.SubTotal, &b.TaxableAmount, &b.CGSTAmount, &b.SGSTAmount, &b.IGSTAmount,
		&b.TotalTax, &b.RoundOff, &b.GrandTotal, &b.CreatedAt)
	return b, err
}

// pgxpool.Pool satisfies inventory.DBTX for the read-only helpers above.
var _ inventory.DBTX = (*pgxpool.Pool)(nil)
