package billing

import "time"

// Bill is the central transactional record. Customer and product
// fields are denormalized copies taken at creation time; the record is
// immutable afterwards except for whole-record deletion and customer
// merge rewrites of the snapshot fields.
type Bill struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	Date          time.Time `json:"date"`

	CustomerID      int64   `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress *string `json:"customer_address,omitempty"`
	CustomerGSTIN   *string `json:"customer_gstin,omitempty"`

	SalesPersonID   int64  `json:"sales_person_id"`
	SalesPersonName string `json:"sales_person_name"`

	IsGSTBill bool `json:"is_gst_bill"`
	// SubTotal always equals TaxableAmount; downstream report math
	// divides by it, so the equality is load-bearing.
	SubTotal      float64 `json:"sub_total"`
	TaxableAmount float64 `json:"taxable_amount"`
	CGSTAmount    float64 `json:"cgst_amount"`
	SGSTAmount    float64 `json:"sgst_amount"`
	IGSTAmount    float64 `json:"igst_amount"`
	TotalTax      float64 `json:"total_tax"`
	RoundOff      float64 `json:"round_off"`
	GrandTotal    float64 `json:"grand_total"`

	Items []BillItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

// BillItem is a point-in-time copy of the sold product line, not a
// live join to Product.
type BillItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	HSNCode     *string `json:"hsn_code,omitempty"`
	BatchNumber *string `json:"batch_number,omitempty"`
	ExpiryDate  *string `json:"expiry_date,omitempty"`
	Quantity    int     `json:"quantity"`
	MRP         float64 `json:"mrp"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}
