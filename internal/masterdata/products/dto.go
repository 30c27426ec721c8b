package products

// CreateProductRequest carries the fields accepted on product creation.
type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Category        string  `json:"category" validate:"required,max=100"`
	HSNCode         string  `json:"hsn_code" validate:"max=20"`
	Unit            string  `json:"unit" validate:"required,max=20"`
	PackageSize     *string `json:"package_size,omitempty" validate:"omitempty,max=50"`
	BatchNumber     *string `json:"batch_number,omitempty" validate:"omitempty,max=50"`
	ExpiryDate      *string `json:"expiry_date,omitempty" validate:"omitempty,max=20"`
	MRP             float64 `json:"mrp" validate:"required,gt=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	PurchasePrice   float64 `json:"purchase_price" validate:"gte=0"`
	GSTRate         float64 `json:"gst_rate" validate:"gte=0,lte=100"`
	CurrentStock    int     `json:"current_stock" validate:"gte=0"`
	MinStockLevel   int     `json:"min_stock_level" validate:"gte=0"`
}

// UpdateProductRequest mirrors CreateProductRequest for full updates.
// CurrentStock is deliberately absent: stock moves only through the ledger.
type UpdateProductRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Category        string  `json:"category" validate:"required,max=100"`
	HSNCode         string  `json:"hsn_code" validate:"max=20"`
	Unit            string  `json:"unit" validate:"required,max=20"`
	PackageSize     *string `json:"package_size,omitempty" validate:"omitempty,max=50"`
	BatchNumber     *string `json:"batch_number,omitempty" validate:"omitempty,max=50"`
	ExpiryDate      *string `json:"expiry_date,omitempty" validate:"omitempty,max=20"`
	MRP             float64 `json:"mrp" validate:"required,gt=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	PurchasePrice   float64 `json:"purchase_price" validate:"gte=0"`
	GSTRate         float64 `json:"gst_rate" validate:"gte=0,lte=100"`
	MinStockLevel   int     `json:"min_stock_level" validate:"gte=0"`
}

// ListResponse wraps a product page with its total count.
type ListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
