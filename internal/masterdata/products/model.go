package products

import (
	"time"
)

// Product represents a stocked item. SellingPrice is derived from MRP
// and DiscountPercent; CurrentStock is owned by the stock ledger.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	HSNCode         string    `json:"hsn_code"`
	Unit            string    `json:"unit"`
	PackageSize     *string   `json:"package_size,omitempty"`
	BatchNumber     *string   `json:"batch_number,omitempty"`
	ExpiryDate      *string   `json:"expiry_date,omitempty"`
	MRP             float64   `json:"mrp"`
	DiscountPercent float64   `json:"discount_percent"`
	SellingPrice    float64   `json:"selling_price"`
	PurchasePrice   float64   `json:"purchase_price"`
	GSTRate         float64   `json:"gst_rate"`
	CurrentStock    int       `json:"current_stock"`
	MinStockLevel   int       `json:"min_stock_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SellingPrice computes the unit price after the list discount.
func SellingPrice(mrp, discountPercent float64) float64 {
	return mrp * (1 - discountPercent/100)
}
