package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FiscalYearShort returns the Indian fiscal year label for t, e.g.
// "24-25" for any date from 2024-04-01 through 2025-03-31.
func FiscalYearShort(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%02d-%02d", year%100, (year+1)%100)
}

// ParseInvoiceSequence extracts the numeric sequence from an invoice
// number of the form PREFIX/NNNN/YY-YY. It returns 0 when the value
// does not match that shape.
func ParseInvoiceSequence(invoiceNo, prefix, fyShort string) int {
	parts := strings.Split(invoiceNo, "/")
	if len(parts) != 3 {
		return 0
	}
	if parts[0] != prefix || parts[2] != fyShort {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextInvoiceNumber picks the next number in the fiscal-year sequence.
// existing holds the invoice numbers already issued for the current
// fiscal year; the next sequence is one past the highest of those, but
// never below startNumber.
func NextInvoiceNumber(existing []string, prefix, fyShort string, startNumber int) string {
	if startNumber < 1 {
		startNumber = 1
	}
	max := 0
	for _, no := range existing {
		if n := ParseInvoiceSequence(no, prefix, fyShort); n > max {
			max = n
		}
	}
	next := max + 1
	if next < startNumber {
		next = startNumber
	}
	return FormatInvoiceNumber(prefix, next, fyShort)
}

// FormatInvoiceNumber renders PREFIX/NNNN/YY-YY with a zero-padded
// four digit sequence. Sequences past 9999 widen naturally.
func FormatInvoiceNumber(prefix string, seq int, fyShort string) string {
	return fmt.Sprintf("%s/%04d/%s", prefix, seq, fyShort)
}
