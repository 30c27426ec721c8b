package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nhw-erp/nhw-erp/internal/inventory"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/sales/customers"
	"github.com/nhw-erp/nhw-erp/internal/sales/salespersons"
	"github.com/nhw-erp/nhw-erp/internal/settings"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// Narrow read ports into the master-data packages. The concrete
// repositories satisfy these directly.
type (
	CustomersPort interface {
		Get(ctx context.Context, id int64) (*customers.Customer, error)
	}
	SalesPersonsPort interface {
		Get(ctx context.Context, id int64) (*salespersons.SalesPerson, error)
	}
	ProductsPort interface {
		Get(ctx context.Context, id int64) (products.Product, error)
	}
	SettingsPort interface {
		Get(ctx context.Context) (settings.CompanySettings, error)
	}
)

// Service creates and deletes bills. A bill insert and its stock
// debits run in one transaction; deletion reverses the debits the same
// way.
type Service struct {
	repo      Repository
	customers CustomersPort
	persons   SalesPersonsPort
	products  ProductsPort
	settings  SettingsPort
	notifier  notify.Notifier
	logger    *slog.Logger
}

func NewService(repo Repository, cust CustomersPort, sp SalesPersonsPort, prod ProductsPort, st SettingsPort, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		customers: cust,
		persons:   sp,
		products:  prod,
		settings:  st,
		notifier:  notifier,
		logger:    logger,
	}
}

// pricedLine pairs a cart line with the product snapshot taken for it.
type pricedLine struct {
	product  products.Product
	quantity int
	rate     float64
}

// CreateBill validates the cart, assigns the next invoice number and
// persists the bill together with its stock debits. On an invoice
// number collision the whole transaction is retried once with a fresh
// number.
func (s *Service) CreateBill(ctx context.Context, req CreateBillRequest) (*Bill, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if req.CustomerID <= 0 {
		return nil, ErrCustomerRequired
	}

	customer, err := s.customers.Get(ctx, req.CustomerID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.IsGSTBill && (customer.GSTIN == nil || *customer.GSTIN == "") {
		return nil, ErrGSTINRequired
	}

	person, err := s.persons.Get(ctx, req.SalesPersonID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrSalesPersonNotFound
	}
	if err != nil {
		return nil, err
	}
	if !person.IsActive {
		return nil, ErrSalesPersonInactive
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := s.priceLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	customerGSTIN := ""
	if customer.GSTIN != nil {
		customerGSTIN = *customer.GSTIN
	}
	totals := ComputeTotals(taxLines(lines), customerGSTIN, req.IsGSTBill, cfg.StateCode)

	now := time.Now().UTC()
	bill := Bill{
		Date:            now,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		CustomerGSTIN:   customer.GSTIN,
		SalesPersonID:   person.ID,
		SalesPersonName: person.Name,
		IsGSTBill:       req.IsGSTBill,
		SubTotal:        totals.Taxable,
		TaxableAmount:   totals.Taxable,
		CGSTAmount:      totals.CGST,
		SGSTAmount:      totals.SGST,
		IGSTAmount:      totals.IGST,
		TotalTax:        totals.Tax,
		RoundOff:        totals.RoundOff,
		GrandTotal:      totals.GrandTotal,
		Items:           billItems(lines),
	}

	fyShort := FiscalYearShort(now)
	insert := func(ctx context.Context, tx TxRepository) error {
		numbers, err := tx.InvoiceNumbersForYear(ctx, cfg.InvoicePrefix, fyShort)
		if err != nil {
			return err
		}
		bill.InvoiceNumber = NextInvoiceNumber(numbers, cfg.InvoicePrefix, fyShort, cfg.InvoiceStartNumber)

		if err := s.checkStock(ctx, tx, lines); err != nil {
			return err
		}

		id, err := tx.InsertBill(ctx, &bill)
		if err != nil {
			return err
		}
		bill.ID = id
		bill.CreatedAt = now

		for _, it := range bill.Items {
			_, err := inventory.Apply(ctx, tx, s.logger, inventory.ChangeInput{
				ProductID: it.ProductID,
				Change:    -it.Quantity,
				Reason:    inventory.ReasonSale,
				Reference: "Invoice: " + bill.InvoiceNumber,
			})
			if err != nil {
				return err
			}
		}
		return nil
	}

	err = s.repo.WithTx(ctx, insert)
	if errors.Is(err, ErrDuplicateInvoiceNumber) {
		// Another bill claimed the number between the scan and the
		// insert. One retry recomputes from the committed state.
		err = s.repo.WithTx(ctx, insert)
	}
	if err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, notify.EntityBills)
	s.notifier.Changed(ctx, notify.EntityStock)
	s.notifier.Changed(ctx, notify.EntityProducts)
	return &bill, nil
}

// DeleteBill removes a bill and returns every sold quantity to stock
// within the same transaction.
func (s *Service) DeleteBill(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		bill, err := tx.GetBill(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteBill(ctx, id); err != nil {
			return err
		}
		for _, it := range bill.Items {
			_, err := inventory.Apply(ctx, tx, s.logger, inventory.ChangeInput{
				ProductID: it.ProductID,
				Change:    it.Quantity,
				Reason:    inventory.ReasonBillDeleted,
				Reference: "Reversed: " + bill.InvoiceNumber,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Changed(ctx, notify.EntityBills)
	s.notifier.Changed(ctx, notify.EntityStock)
	s.notifier.Changed(ctx, notify.EntityProducts)
	return nil
}

// MergeCustomers rewrites every bill snapshot of the source customer
// to the target's current details, then deletes the source. Both steps
// share one transaction.
func (s *Service) MergeCustomers(ctx context.Context, req MergeCustomersRequest) (int64, error) {
	if req.FromID == req.ToID {
		return 0, ErrMergeSameCustomer
	}
	if _, err := s.customers.Get(ctx, req.FromID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, ErrCustomerNotFound
		}
		return 0, err
	}
	target, err := s.customers.Get(ctx, req.ToID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, ErrCustomerNotFound
		}
		return 0, err
	}

	var rewritten int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		rewritten, err = tx.RewriteCustomerSnapshots(ctx, req.FromID, target.ID, target.Name, target.Phone, target.Address, target.GSTIN)
		if err != nil {
			return err
		}
		return tx.DeleteCustomer(ctx, req.FromID)
	})
	if err != nil {
		return 0, err
	}

	s.notifier.Changed(ctx, notify.EntityCustomers)
	s.notifier.Changed(ctx, notify.EntityBills)
	return rewritten, nil
}

// ValidateCart reports pricing totals plus any issue that would make
// CreateBill fail, without touching storage state.
func (s *Service) ValidateCart(ctx context.Context, req ValidateCartRequest) (CartValidation, error) {
	var v CartValidation
	if len(req.Items) == 0 {
		v.Issues = append(v.Issues, ErrEmptyCart.Error())
		return v, nil
	}

	customerGSTIN := ""
	customer, err := s.customers.Get(ctx, req.CustomerID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		v.Issues = append(v.Issues, ErrCustomerNotFound.Error())
	case err != nil:
		return v, err
	case customer.GSTIN != nil:
		customerGSTIN = *customer.GSTIN
	}
	if req.IsGSTBill && customerGSTIN == "" {
		v.Issues = append(v.Issues, ErrGSTINRequired.Error())
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return v, err
	}

	needed := map[int64]int{}
	var lines []pricedLine
	for _, it := range req.Items {
		p, err := s.products.Get(ctx, it.ProductID)
		if errors.Is(err, shared.ErrNotFound) {
			v.Issues = append(v.Issues, fmt.Sprintf("product %d not found", it.ProductID))
			continue
		}
		if err != nil {
			return v, err
		}
		needed[p.ID] += it.Quantity
		if needed[p.ID] > p.CurrentStock {
			v.Issues = append(v.Issues, fmt.Sprintf("%s: requested %d exceeds stock %d", p.Name, needed[p.ID], p.CurrentStock))
		}
		rate := it.Rate
		if rate <= 0 {
			rate = p.SellingPrice
		}
		lines = append(lines, pricedLine{product: p, quantity: it.Quantity, rate: rate})
	}

	v.Totals = ComputeTotals(taxLines(lines), customerGSTIN, req.IsGSTBill, cfg.StateCode)
	v.OK = len(v.Issues) == 0
	return v, nil
}

// NextInvoiceNumberPreview returns the number the next bill would get.
// Purely informational; the authoritative assignment happens inside
// the create transaction.
func (s *Service) NextInvoiceNumberPreview(ctx context.Context) (string, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	fyShort := FiscalYearShort(time.Now().UTC())
	var next string
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		numbers, err := tx.InvoiceNumbersForYear(ctx, cfg.InvoicePrefix, fyShort)
		if err != nil {
			return err
		}
		next = NextInvoiceNumber(numbers, cfg.InvoicePrefix, fyShort, cfg.InvoiceStartNumber)
		return nil
	})
	return next, err
}

func (s *Service) Get(ctx context.Context, id int64) (*Bill, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListBillsFilter) ([]Bill, int, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) priceLines(ctx context.Context, items []CartItemRequest) ([]pricedLine, error) {
	lines := make([]pricedLine, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrEmptyCart)
		}
		p, err := s.products.Get(ctx, it.ProductID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, it.ProductID)
		}
		if err != nil {
			return nil, err
		}
		rate := it.Rate
		if rate <= 0 {
			rate = p.SellingPrice
		}
		lines = append(lines, pricedLine{product: p, quantity: it.Quantity, rate: rate})
	}
	return lines, nil
}

// checkStock verifies cumulative requested quantity per product
// against the row-locked stock before any debit is written.
func (s *Service) checkStock(ctx context.Context, tx TxRepository, lines []pricedLine) error {
	needed := map[int64]int{}
	for _, l := range lines {
		needed[l.product.ID] += l.quantity
	}
	for id, qty := range needed {
		ps, err := tx.GetProductForUpdate(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
		}
		if err != nil {
			return err
		}
		if qty > ps.CurrentStock {
			return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, ps.Name, ps.CurrentStock, qty)
		}
	}
	return nil
}

func taxLines(lines []pricedLine) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = CartLine{UnitPrice: l.rate, Quantity: l.quantity, GSTRate: l.product.GSTRate}
	}
	return out
}

func billItems(lines []pricedLine) []BillItem {
	items := make([]BillItem, len(lines))
	for i, l := range lines {
		var hsn *string
		if l.product.HSNCode != "" {
			h := l.product.HSNCode
			hsn = &h
		}
		items[i] = BillItem{
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			HSNCode:     hsn,
			BatchNumber: l.product.BatchNumber,
			ExpiryDate:  l.product.ExpiryDate,
			Quantity:    l.quantity,
			MRP:         l.product.MRP,
			Rate:        l.rate,
			Amount:      l.rate * float64(l.quantity),
		}
	}
	return items
}
