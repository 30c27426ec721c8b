package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	gstr1Calls int
	rows       []GSTR1Row
}

func (f *fakeRepo) GSTR1Rows(_ context.Context, _, _ time.Time) ([]GSTR1Row, error) {
	f.gstr1Calls++
	return f.rows, nil
}

func (f *fakeRepo) MonthlyTax(context.Context, time.Time, time.Time) ([]MonthlyTaxRow, error) {
	return nil, nil
}

func (f *fakeRepo) ProfitLoss(_ context.Context, from, to time.Time) (ProfitLossReport, error) {
	return ProfitLossReport{From: from, To: to, Revenue: 1500, CostOfGoods: 900, GrossProfit: 600}, nil
}

func (f *fakeRepo) SalesByProduct(context.Context, time.Time, time.Time) ([]ProductSalesRow, error) {
	return nil, nil
}

func (f *fakeRepo) SalesByCategory(context.Context, time.Time, time.Time) ([]CategorySalesRow, error) {
	return nil, nil
}

func TestGSTR1TotalsAndCaching(t *testing.T) {
	repo := &fakeRepo{rows: []GSTR1Row{
		{InvoiceNumber: "NH/0001/24-25", TaxableAmount: 200, CGST: 5, SGST: 5, TotalTax: 10, GrandTotal: 210},
		{InvoiceNumber: "NH/0002/24-25", TaxableAmount: 100, IGST: 12, TotalTax: 12, GrandTotal: 112, InterState: true},
	}}
	cache, _ := newTestCache(t)
	svc := NewService(repo, cache)
	ctx := context.Background()

	month, _ := time.Parse("2006-01", "2024-05")
	report, err := svc.GSTR1(ctx, month)
	require.NoError(t, err)

	require.Equal(t, "2024-05", report.Month)
	require.Len(t, report.Rows, 2)
	require.InDelta(t, 300, report.Totals.TaxableAmount, 1e-9)
	require.InDelta(t, 5, report.Totals.CGST, 1e-9)
	require.InDelta(t, 5, report.Totals.SGST, 1e-9)
	require.InDelta(t, 12, report.Totals.IGST, 1e-9)
	require.InDelta(t, 22, report.Totals.TotalTax, 1e-9)
	require.InDelta(t, 322, report.Totals.GrandTotal, 1e-9)
	require.Equal(t, 2, report.Totals.BillCount)

	// second call is served from cache
	_, err = svc.GSTR1(ctx, month)
	require.NoError(t, err)
	require.Equal(t, 1, repo.gstr1Calls)

	// a bump forces a reload
	require.NoError(t, cache.Bump(ctx))
	_, err = svc.GSTR1(ctx, month)
	require.NoError(t, err)
	require.Equal(t, 2, repo.gstr1Calls)
}

func TestProfitLossFormatsINR(t *testing.T) {
	cache, _ := newTestCache(t)
	svc := NewService(&fakeRepo{}, cache)

	from, _ := time.Parse("2006-01-02", "2024-04-01")
	to, _ := time.Parse("2006-01-02", "2024-05-01")
	report, err := svc.ProfitLoss(context.Background(), from, to)
	require.NoError(t, err)

	require.InDelta(t, 600, report.GrossProfit, 1e-9)
	require.Equal(t, "₹1,500.00", report.RevenueINR)
	require.Equal(t, "₹600.00", report.GrossProfitINR)
}

func TestFormatINRIndianGrouping(t *testing.T) {
	require.Equal(t, "₹12,34,567.89", FormatINR(1234567.89))
	require.Equal(t, "₹100.00", FormatINR(100))
}
