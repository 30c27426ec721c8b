package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs read-only aggregations over bills and their items.
type Repository interface {
	GSTR1Rows(ctx context.Context, from, to time.Time) ([]GSTR1Row, error)
	MonthlyTax(ctx context.Context, from, to time.Time) ([]MonthlyTaxRow, error)
	ProfitLoss(ctx context.Context, from, to time.Time) (ProfitLossReport, error)
	SalesByProduct(ctx context.Context, from, to time.Time) ([]ProductSalesRow, error)
	SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySalesRow, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) GSTR1Rows(ctx context.Context, from, to time.Time) ([]GSTR1Row, error) {
	rows, err := r.db.Query(ctx, `
		SELECT invoice_number, bill_date, customer_name, customer_gstin,
			taxable_amount, cgst_amount, sgst_amount, igst_amount, total_tax, grand_total,
			igst_amount > 0 AS inter_state
		FROM bills
		WHERE is_gst_bill AND bill_date >= $1 AND bill_date < $2
		ORDER BY bill_date, id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GSTR1Row
	for rows.Next() {
		var row GSTR1Row
		if err := rows.Scan(&row.InvoiceNumber, &row.Date, &row.CustomerName, &row.CustomerGSTIN,
			&row.TaxableAmount, &row.CGST, &row.SGST, &row.IGST, &row.TotalTax, &row.GrandTotal,
			&row.InterState); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) MonthlyTax(ctx context.Context, from, to time.Time) ([]MonthlyTaxRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(date_trunc('month', bill_date), 'YYYY-MM') AS month,
			COALESCE(SUM(taxable_amount), 0), COALESCE(SUM(cgst_amount), 0),
			COALESCE(SUM(sgst_amount), 0), COALESCE(SUM(igst_amount), 0),
			COALESCE(SUM(total_tax), 0), COALESCE(SUM(grand_total), 0), COUNT(*)
		FROM bills
		WHERE is_gst_bill AND bill_date >= $1 AND bill_date < $2
		GROUP BY 1 ORDER BY 1`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyTaxRow
	for rows.Next() {
		var row MonthlyTaxRow
		if err := rows.Scan(&row.Month, &row.TaxableAmount, &row.CGST, &row.SGST, &row.IGST,
			&row.TotalTax, &row.GrandTotal, &row.BillCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) ProfitLoss(ctx context.Context, from, to time.Time) (ProfitLossReport, error) {
	report := ProfitLossReport{From: from, To: to}

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(grand_total), 0), COUNT(*)
		FROM bills WHERE bill_date >= $1 AND bill_date < $2`, from, to).
		Scan(&report.Revenue, &report.BillCount)
	if err != nil {
		return report, err
	}

	// cost basis joins back to the product's current purchase price;
	// items whose product was deleted contribute zero cost
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(bi.quantity * p.purchase_price), 0)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		LEFT JOIN products p ON p.id = bi.product_id
		WHERE b.bill_date >= $1 AND b.bill_date < $2`, from, to).
		Scan(&report.CostOfGoods)
	if err != nil {
		return report, err
	}

	report.GrossProfit = report.Revenue - report.CostOfGoods
	return report, nil
}

func (r *repository) SalesByProduct(ctx context.Context, from, to time.Time) ([]ProductSalesRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bi.product_id, bi.product_name,
			COALESCE(SUM(bi.quantity), 0), COALESCE(SUM(bi.amount), 0)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.bill_date >= $1 AND b.bill_date < $2
		GROUP BY bi.product_id, bi.product_name
		ORDER BY SUM(bi.amount) DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductSalesRow
	for rows.Next() {
		var row ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.Amount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySalesRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(p.category, 'Uncategorised'),
			COALESCE(SUM(bi.quantity), 0), COALESCE(SUM(bi.amount), 0)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		LEFT JOIN products p ON p.id = bi.product_id
		WHERE b.bill_date >= $1 AND b.bill_date < $2
		GROUP BY 1 ORDER BY SUM(bi.amount) DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategorySalesRow
	for rows.Next() {
		var row CategorySalesRow
		if err := rows.Scan(&row.Category, &row.Quantity, &row.Amount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
