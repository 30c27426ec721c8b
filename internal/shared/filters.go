package shared

// ListFilters represents standard list filters accepted by the
// master-data list endpoints.
type ListFilters struct {
	Search   string
	Category string
	LowStock bool
	Limit    int
	Offset   int
}
