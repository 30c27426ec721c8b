package billing

import "errors"

// Sentinel errors surfaced by the invoice orchestrator. All are
// pre-persistence validation failures: nothing has been written when
// any of these is returned.
var (
	ErrEmptyCart           = errors.New("billing: cart is empty")
	ErrCustomerRequired    = errors.New("billing: customer is required")
	ErrCustomerNotFound    = errors.New("billing: customer not found")
	ErrGSTINRequired       = errors.New("billing: GST bill requires customer GSTIN")
	ErrSalesPersonNotFound = errors.New("billing: sales person not found")
	ErrSalesPersonInactive = errors.New("billing: sales person is not active")
	ErrInsufficientStock   = errors.New("billing: quantity exceeds available stock")
	ErrProductNotFound     = errors.New("billing: product not found")
	ErrBillNotFound        = errors.New("billing: bill not found")
	ErrMergeSameCustomer   = errors.New("billing: merge source and target are the same customer")
)
