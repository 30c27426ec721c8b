package billing

import "time"

// CartItemRequest is one line of a bill being created. Rate is
// optional; when zero the product's selling price is used.
type CartItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Rate      float64 `json:"rate" validate:"gte=0"`
}

type CreateBillRequest struct {
	CustomerID    int64             `json:"customer_id" validate:"required,gt=0"`
	SalesPersonID int64             `json:"sales_person_id" validate:"required,gt=0"`
	IsGSTBill     bool              `json:"is_gst_bill"`
	Items         []CartItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ValidateCartRequest previews totals and stock availability without
// creating a bill.
type ValidateCartRequest struct {
	CustomerID int64             `json:"customer_id" validate:"required,gt=0"`
	IsGSTBill  bool              `json:"is_gst_bill"`
	Items      []CartItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CartValidation struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues,omitempty"`
	Totals Totals   `json:"totals"`
}

type ListBillsFilter struct {
	CustomerID int64
	From       *time.Time
	To         *time.Time
	IsGSTBill  *bool
	Limit      int
	Offset     int
}

type MergeCustomersRequest struct {
	FromID int64 `json:"from_id" validate:"required,gt=0"`
	ToID   int64 `json:"to_id" validate:"required,gt=0"`
}

type BillResponse struct {
	Bill
	AmountInWords string `json:"amount_in_words"`
}

func NewBillResponse(b Bill) BillResponse {
	return BillResponse{Bill: b, AmountInWords: AmountInWords(b.GrandTotal)}
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
	Total int    `json:"total"`
}

type NextNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}
