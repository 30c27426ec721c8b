package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Rupees Zero Only"},
		{210, "Rupees Two Hundred Ten Only"},
		{1000, "Rupees One Thousand Only"},
		{1234, "Rupees One Thousand Two Hundred Thirty Four Only"},
		{100000, "Rupees One Lakh Only"},
		{2550000, "Rupees Twenty Five Lakh Fifty Thousand Only"},
		{10000000, "Rupees One Crore Only"},
		{12345678, "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Only"},
		{99.50, "Rupees Ninety Nine and Fifty Paise Only"},
		{0.05, "Rupees Zero and Five Paise Only"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, AmountInWords(tc.amount))
	}
}

func TestAmountInWordsRoundsPaise(t *testing.T) {
	// float noise just below a whole rupee
	require.Equal(t, "Rupees Ten Only", AmountInWords(9.999))
}
