package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFiscalYearShort(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-04-01", "24-25"},
		{"2024-12-31", "24-25"},
		{"2025-03-31", "24-25"},
		{"2025-04-01", "25-26"},
		{"2024-01-15", "23-24"},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		require.NoError(t, err)
		require.Equal(t, tc.want, FiscalYearShort(d), tc.date)
	}
}

func TestNextInvoiceNumberFirstOfYear(t *testing.T) {
	got := NextInvoiceNumber(nil, "NH", "24-25", 1)
	require.Equal(t, "NH/0001/24-25", got)
}

func TestNextInvoiceNumberMonotonic(t *testing.T) {
	existing := []string{"NH/0001/24-25", "NH/0007/24-25", "NH/0003/24-25"}
	got := NextInvoiceNumber(existing, "NH", "24-25", 1)
	require.Equal(t, "NH/0008/24-25", got)
}

func TestNextInvoiceNumberStartNumberFloor(t *testing.T) {
	got := NextInvoiceNumber([]string{"NH/0002/24-25"}, "NH", "24-25", 100)
	require.Equal(t, "NH/0100/24-25", got)

	// once past the floor the scan wins
	got = NextInvoiceNumber([]string{"NH/0150/24-25"}, "NH", "24-25", 100)
	require.Equal(t, "NH/0151/24-25", got)
}

func TestNextInvoiceNumberIgnoresOtherYears(t *testing.T) {
	existing := []string{"NH/0042/23-24", "NH/0002/24-25"}
	got := NextInvoiceNumber(existing, "NH", "24-25", 1)
	require.Equal(t, "NH/0003/24-25", got)
}

func TestNextInvoiceNumberIgnoresOtherPrefixes(t *testing.T) {
	existing := []string{"OLD/0099/24-25"}
	got := NextInvoiceNumber(existing, "NH", "24-25", 1)
	require.Equal(t, "NH/0001/24-25", got)
}

func TestNextInvoiceNumberWidensPast9999(t *testing.T) {
	got := NextInvoiceNumber([]string{"NH/9999/24-25"}, "NH", "24-25", 1)
	require.Equal(t, "NH/10000/24-25", got)
}

func TestParseInvoiceSequence(t *testing.T) {
	require.Equal(t, 42, ParseInvoiceSequence("NH/0042/24-25", "NH", "24-25"))
	require.Equal(t, 0, ParseInvoiceSequence("garbage", "NH", "24-25"))
	require.Equal(t, 0, ParseInvoiceSequence("NH/00x2/24-25", "NH", "24-25"))
	require.Equal(t, 0, ParseInvoiceSequence("NH/0042/23-24", "NH", "24-25"))
}
