package reports

import "time"

// GSTR1Row is one outward-supply line of the monthly GSTR-1 report.
// Only GST bills feed the report.
type GSTR1Row struct {
	InvoiceNumber string    `json:"invoice_number"`
	Date          time.Time `json:"date"`
	CustomerName  string    `json:"customer_name"`
	CustomerGSTIN *string   `json:"customer_gstin,omitempty"`
	TaxableAmount float64   `json:"taxable_amount"`
	CGST          float64   `json:"cgst"`
	SGST          float64   `json:"sgst"`
	IGST          float64   `json:"igst"`
	TotalTax      float64   `json:"total_tax"`
	GrandTotal    float64   `json:"grand_total"`
	InterState    bool      `json:"inter_state"`
}

type GSTR1Report struct {
	Month  string     `json:"month"`
	Rows   []GSTR1Row `json:"rows"`
	Totals TaxBucket  `json:"totals"`
}

// TaxBucket aggregates the tax components over a period.
type TaxBucket struct {
	TaxableAmount float64 `json:"taxable_amount"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	TotalTax      float64 `json:"total_tax"`
	GrandTotal    float64 `json:"grand_total"`
	BillCount     int     `json:"bill_count"`
}

type MonthlyTaxRow struct {
	Month string `json:"month"`
	TaxBucket
}

type TaxSummaryReport struct {
	From time.Time       `json:"from"`
	To   time.Time       `json:"to"`
	Rows []MonthlyTaxRow `json:"rows"`
}

// ProfitLossReport compares revenue against the purchase cost of the
// goods actually sold in the period.
type ProfitLossReport struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Revenue        float64   `json:"revenue"`
	CostOfGoods    float64   `json:"cost_of_goods"`
	GrossProfit    float64   `json:"gross_profit"`
	BillCount      int       `json:"bill_count"`
	RevenueINR     string    `json:"revenue_inr"`
	GrossProfitINR string    `json:"gross_profit_inr"`
}

type ProductSalesRow struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

type CategorySalesRow struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}
