package reports

import (
	"context"
	"time"
)

// Service serves cached report aggregations. Every result is cached
// under the current cache version; mutations elsewhere bump the
// version instead of deleting keys.
type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GSTR1 builds the outward-supply report for one calendar month
// (format "2006-01").
func (s *Service) GSTR1(ctx context.Context, month time.Time) (GSTR1Report, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	key, err := s.cache.BuildKey(ctx, "reports", "gstr1", from.Format("2006-01"))
	if err != nil {
		return GSTR1Report{}, err
	}

	var report GSTR1Report
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.GSTR1Rows(ctx, from, to)
		if err != nil {
			return nil, err
		}
		r := GSTR1Report{Month: from.Format("2006-01"), Rows: rows}
		for _, row := range rows {
			r.Totals.TaxableAmount += row.TaxableAmount
			r.Totals.CGST += row.CGST
			r.Totals.SGST += row.SGST
			r.Totals.IGST += row.IGST
			r.Totals.TotalTax += row.TotalTax
			r.Totals.GrandTotal += row.GrandTotal
		}
		r.Totals.BillCount = len(rows)
		return r, nil
	})
	return report, err
}

func (s *Service) TaxSummary(ctx context.Context, from, to time.Time) (TaxSummaryReport, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "taxsummary", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return TaxSummaryReport{}, err
	}

	var report TaxSummaryReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.MonthlyTax(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return TaxSummaryReport{From: from, To: to, Rows: rows}, nil
	})
	return report, err
}

func (s *Service) ProfitLoss(ctx context.Context, from, to time.Time) (ProfitLossReport, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "pl", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return ProfitLossReport{}, err
	}

	var report ProfitLossReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		r, err := s.repo.ProfitLoss(ctx, from, to)
		if err != nil {
			return nil, err
		}
		r.RevenueINR = FormatINR(r.Revenue)
		r.GrossProfitINR = FormatINR(r.GrossProfit)
		return r, nil
	})
	return report, err
}

func (s *Service) SalesByProduct(ctx context.Context, from, to time.Time) ([]ProductSalesRow, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "byproduct", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	var rows []ProductSalesRow
	err = s.cache.FetchJSON(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		return s.repo.SalesByProduct(ctx, from, to)
	})
	return rows, err
}

func (s *Service) SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySalesRow, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "bycategory", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	var rows []CategorySalesRow
	err = s.cache.FetchJSON(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		return s.repo.SalesByCategory(ctx, from, to)
	})
	return rows, err
}
