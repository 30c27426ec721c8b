package inventory

import (
	"errors"
	"time"
)

// ChangeReason enumerates why stock moved.
type ChangeReason string

const (
	ReasonSale        ChangeReason = "sale"
	ReasonRestock     ChangeReason = "restock"
	ReasonReturn      ChangeReason = "return"
	ReasonAdjustment  ChangeReason = "adjustment"
	ReasonDamage      ChangeReason = "damage"
	ReasonTheft       ChangeReason = "theft"
	ReasonPersonal    ChangeReason = "personal"
	ReasonBillDeleted ChangeReason = "bill_deleted"
)

// Valid reports whether r is one of the known reasons.
func (r ChangeReason) Valid() bool {
	switch r {
	case ReasonSale, ReasonRestock, ReasonReturn, ReasonAdjustment,
		ReasonDamage, ReasonTheft, ReasonPersonal, ReasonBillDeleted:
		return true
	}
	return false
}

// StockHistory is one append-only ledger entry. Entries are never
// mutated; the oldest beyond the retention cap are pruned.
type StockHistory struct {
	ID           int64        `json:"id"`
	Timestamp    time.Time    `json:"timestamp"`
	ProductID    int64        `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ChangeAmount int          `json:"change_amount"`
	Reason       ChangeReason `json:"reason"`
	Reference    string       `json:"reference,omitempty"`
}

// HistoryRetention caps the number of retained ledger entries.
const HistoryRetention = 1000

// UnknownProductName is recorded when a ledger write references a
// product id that no longer resolves. The write still succeeds so the
// audit trail stays append-only; the inconsistency is logged upstream.
const UnknownProductName = "Unknown"

// ProductStock is the slice of a product the ledger reads and writes.
type ProductStock struct {
	ID           int64
	Name         string
	CurrentStock int
}

// ChangeInput describes one signed stock movement.
type ChangeInput struct {
	ProductID int64
	Change    int
	Reason    ChangeReason
	Reference string
}

// HistoryFilter narrows ledger listings.
type HistoryFilter struct {
	ProductID int64
	Limit     int
}

var (
	// ErrInvalidReason indicates an unknown change reason.
	ErrInvalidReason = errors.New("inventory: invalid change reason")
	// ErrZeroChange indicates a movement of zero quantity.
	ErrZeroChange = errors.New("inventory: change amount must be non-zero")
)
