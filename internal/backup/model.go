package backup

import (
	"encoding/json"
	"time"
)

// KeepLast is how many backups survive pruning.
const KeepLast = 7

// Backup kinds.
const (
	KindManual = "manual"
	KindAuto   = "auto"
)

// Meta describes a stored backup without its payload.
type Meta struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	SizeBytes int       `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is the export payload: every table serialised as raw JSON
// rows, restorable as a unit.
type Snapshot struct {
	CreatedAt time.Time                  `json:"created_at"`
	Tables    map[string]json.RawMessage `json:"tables"`
}

// tableOrder lists snapshot tables in foreign-key dependency order.
// Restore truncates in reverse and inserts in this order.
var tableOrder = []string{
	"company_settings",
	"products",
	"customers",
	"sales_persons",
	"bills",
	"bill_items",
	"stock_history",
}
