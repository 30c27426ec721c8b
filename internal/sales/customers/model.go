package customers

import (
	"regexp"
	"time"
)

// Customer is a billing party. Bills copy these fields by value at
// creation time, so later edits never rewrite historical invoices
// (customer merge being the one explicit exception).
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	GSTIN     *string   `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// ValidGSTIN reports whether s matches the 15-character GSTIN format.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// StateCode extracts the two-digit state prefix of a GSTIN.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}
