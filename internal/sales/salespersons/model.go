package salespersons

import "time"

// SalesPerson may be assigned to new bills only while active; inactive
// records stay valid as historical references on old bills.
type SalesPerson struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
