package customers

// CreateCustomerRequest carries customer creation fields.
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Phone   string  `json:"phone" validate:"required,max=20"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	GSTIN   *string `json:"gstin,omitempty" validate:"omitempty,len=15"`
}

// UpdateCustomerRequest mirrors CreateCustomerRequest for full updates.
type UpdateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Phone   string  `json:"phone" validate:"required,max=20"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	GSTIN   *string `json:"gstin,omitempty" validate:"omitempty,len=15"`
}

// ListCustomersRequest filters customer listings.
type ListCustomersRequest struct {
	Search string `json:"search"`
	Limit  int    `json:"limit" validate:"gte=0,lte=1000"`
	Offset int    `json:"offset" validate:"gte=0"`
}

// MergeRequest merges one customer record into another.
type MergeRequest struct {
	FromID int64 `json:"from_id" validate:"required,gt=0"`
	ToID   int64 `json:"to_id" validate:"required,gt=0"`
}
