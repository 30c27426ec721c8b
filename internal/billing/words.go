package billing

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func twoDigits(n int) string {
	if n < 20 {
		return onesWords[n]
	}
	w := tensWords[n/10]
	if n%10 != 0 {
		w += " " + onesWords[n%10]
	}
	return w
}

func threeDigits(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, twoDigits(n))
	}
	return strings.Join(parts, " ")
}

// numberToWords spells n using the Indian numbering system
// (thousand, lakh, crore).
func numberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	var parts []string
	if n >= 1e7 {
		parts = append(parts, numberToWords(n/1e7)+" Crore")
		n %= 1e7
	}
	if n >= 1e5 {
		parts = append(parts, twoDigits(int(n/1e5))+" Lakh")
		n %= 1e5
	}
	if n >= 1000 {
		parts = append(parts, twoDigits(int(n/1000))+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, threeDigits(int(n)))
	}
	return strings.Join(parts, " ")
}

// AmountInWords spells an INR amount for invoice print, e.g.
// "Rupees Two Hundred Ten Only" or
// "Rupees Ninety Nine and Fifty Paise Only".
func AmountInWords(amount float64) string {
	if amount < 0 {
		amount = -amount
	}
	rupees := int64(amount)
	paise := int(math.Round((amount - float64(rupees)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	var b strings.Builder
	b.WriteString("Rupees ")
	b.WriteString(numberToWords(rupees))
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(twoDigits(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}
