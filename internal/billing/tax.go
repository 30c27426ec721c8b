package billing

import (
	"math"

	"github.com/nhw-erp/nhw-erp/internal/sales/customers"
	"github.com/nhw-erp/nhw-erp/internal/settings"
)

// CartLine is one priced cart entry fed to the tax engine.
type CartLine struct {
	UnitPrice float64
	Quantity  int
	GSTRate   float64
}

// Totals is the tax engine output. Invariants: Tax = CGST+SGST+IGST;
// for an inter-state GST bill all tax sits in IGST, otherwise it is
// split evenly between CGST and SGST; GrandTotal-RoundOff = Taxable+Tax.
type Totals struct {
	Taxable    float64 `json:"taxable"`
	Tax        float64 `json:"tax"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	RoundOff   float64 `json:"round_off"`
	GrandTotal float64 `json:"grand_total"`
	InterState bool    `json:"inter_state"`
}

// ComputeTotals computes taxable value, tax split and grand total for
// a cart. Inter-state is detected by comparing the customer GSTIN's
// state prefix with the company state code; without a customer GSTIN
// the transaction is treated as intra-state.
func ComputeTotals(lines []CartLine, customerGSTIN string, isGSTBill bool, companyStateCode string) Totals {
	if companyStateCode == "" {
		companyStateCode = settings.DefaultStateCode
	}

	interState := false
	if isGSTBill && customerGSTIN != "" {
		if cs := customers.StateCode(customerGSTIN); cs != "" && cs != companyStateCode {
			interState = true
		}
	}

	var taxable, tax float64
	for _, l := range lines {
		lineTaxable := l.UnitPrice * float64(l.Quantity)
		taxable += lineTaxable
		if isGSTBill {
			tax += lineTaxable * (l.GSTRate / 100)
		}
	}

	var cgst, sgst, igst float64
	if isGSTBill {
		if interState {
			igst = tax
		} else {
			cgst = tax / 2
			sgst = tax / 2
		}
	}

	raw := taxable + tax
	grand := math.Round(raw)

	return Totals{
		Taxable:    taxable,
		Tax:        tax,
		CGST:       cgst,
		SGST:       sgst,
		IGST:       igst,
		RoundOff:   grand - raw,
		GrandTotal: grand,
		InterState: interState,
	}
}
