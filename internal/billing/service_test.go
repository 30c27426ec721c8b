package billing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhw-erp/nhw-erp/internal/inventory"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/sales/customers"
	"github.com/nhw-erp/nhw-erp/internal/sales/salespersons"
	"github.com/nhw-erp/nhw-erp/internal/settings"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// memoryStore backs Repository, TxRepository and the master-data read
// ports for service tests.
type memoryStore struct {
	products         map[int64]*products.Product
	customers        map[int64]*customers.Customer
	persons          map[int64]*salespersons.SalesPerson
	bills            map[int64]*Bill
	history          []inventory.StockHistory
	nextBillID       int64
	nextHistID       int64
	duplicateInserts int
	deletedCustomers []int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products:  make(map[int64]*products.Product),
		customers: make(map[int64]*customers.Customer),
		persons:   make(map[int64]*salespersons.SalesPerson),
		bills:     make(map[int64]*Bill),
	}
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, m)
}

func (m *memoryStore) Get(ctx context.Context, id int64) (*Bill, error) {
	return m.GetBill(ctx, id)
}

func (m *memoryStore) List(_ context.Context, _ ListBillsFilter) ([]Bill, int, error) {
	out := make([]Bill, 0, len(m.bills))
	for _, b := range m.bills {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (m *memoryStore) InvoiceNumbersForYear(_ context.Context, prefix, fyShort string) ([]string, error) {
	var numbers []string
	for _, b := range m.bills {
		if strings.HasPrefix(b.InvoiceNumber, prefix+"/") && strings.HasSuffix(b.InvoiceNumber, "/"+fyShort) {
			numbers = append(numbers, b.InvoiceNumber)
		}
	}
	return numbers, nil
}

func (m *memoryStore) InsertBill(_ context.Context, b *Bill) (int64, error) {
	if m.duplicateInserts > 0 {
		m.duplicateInserts--
		return 0, ErrDuplicateInvoiceNumber
	}
	for _, existing := range m.bills {
		if existing.InvoiceNumber == b.InvoiceNumber {
			return 0, ErrDuplicateInvoiceNumber
		}
	}
	m.nextBillID++
	stored := *b
	stored.ID = m.nextBillID
	m.bills[stored.ID] = &stored
	return stored.ID, nil
}

func (m *memoryStore) GetBill(_ context.Context, id int64) (*Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, ErrBillNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memoryStore) DeleteBill(_ context.Context, id int64) error {
	if _, ok := m.bills[id]; !ok {
		return ErrBillNotFound
	}
	delete(m.bills, id)
	return nil
}

func (m *memoryStore) RewriteCustomerSnapshots(_ context.Context, fromID, toID int64, name, phone string, address, gstin *string) (int64, error) {
	var n int64
	for _, b := range m.bills {
		if b.CustomerID == fromID {
			b.CustomerID = toID
			b.CustomerName = name
			b.CustomerPhone = phone
			b.CustomerAddress = address
			b.CustomerGSTIN = gstin
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) DeleteCustomer(_ context.Context, id int64) error {
	delete(m.customers, id)
	m.deletedCustomers = append(m.deletedCustomers, id)
	return nil
}

func (m *memoryStore) GetProductForUpdate(_ context.Context, id int64) (inventory.ProductStock, error) {
	p, ok := m.products[id]
	if !ok {
		return inventory.ProductStock{}, shared.ErrNotFound
	}
	return inventory.ProductStock{ID: p.ID, Name: p.Name, CurrentStock: p.CurrentStock}, nil
}

func (m *memoryStore) UpdateProductStock(_ context.Context, id int64, stock int) error {
	m.products[id].CurrentStock = stock
	return nil
}

func (m *memoryStore) InsertHistory(_ context.Context, h inventory.StockHistory) (int64, error) {
	m.nextHistID++
	h.ID = m.nextHistID
	m.history = append(m.history, h)
	return h.ID, nil
}

func (m *memoryStore) PruneHistory(_ context.Context, keep int) error {
	if len(m.history) > keep {
		m.history = m.history[len(m.history)-keep:]
	}
	return nil
}

// read ports

type customersPort struct{ store *memoryStore }

func (p customersPort) Get(_ context.Context, id int64) (*customers.Customer, error) {
	c, ok := p.store.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

type personsPort struct{ store *memoryStore }

func (p personsPort) Get(_ context.Context, id int64) (*salespersons.SalesPerson, error) {
	sp, ok := p.store.persons[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *sp
	return &copied, nil
}

type productsPort struct{ store *memoryStore }

func (p productsPort) Get(_ context.Context, id int64) (products.Product, error) {
	pr, ok := p.store.products[id]
	if !ok {
		return products.Product{}, shared.ErrNotFound
	}
	return *pr, nil
}

type settingsPort struct{ cfg settings.CompanySettings }

func (p settingsPort) Get(context.Context) (settings.CompanySettings, error) {
	return p.cfg, nil
}

func ptr(s string) *string { return &s }

func newTestService(store *memoryStore) *Service {
	cfg := settings.Defaults()
	cfg.InvoicePrefix = "NH"
	cfg.InvoiceStartNumber = 1
	cfg.StateCode = "19"
	return NewService(store,
		customersPort{store}, personsPort{store}, productsPort{store},
		settingsPort{cfg}, notify.Noop{}, nil)
}

func seedStore() *memoryStore {
	store := newMemoryStore()
	store.products[1] = &products.Product{
		ID: 1, Name: "Chyawanprash 500g", HSNCode: "3004",
		MRP: 120, SellingPrice: 100, GSTRate: 5, CurrentStock: 10,
	}
	store.products[2] = &products.Product{
		ID: 2, Name: "Triphala Tablets", HSNCode: "3004",
		MRP: 60, SellingPrice: 50, GSTRate: 12, CurrentStock: 4,
	}
	store.customers[1] = &customers.Customer{
		ID: 1, Name: "Sharma Stores", Phone: "9000000001",
		GSTIN: ptr("19ABCDE1234F1Z5"),
	}
	store.customers[2] = &customers.Customer{
		ID: 2, Name: "Mumbai Traders", Phone: "9000000002",
		GSTIN: ptr("27ABCDE1234F1Z5"),
	}
	store.customers[3] = &customers.Customer{
		ID: 3, Name: "Walk In", Phone: "9000000003",
	}
	store.persons[1] = &salespersons.SalesPerson{ID: 1, Name: "Ravi", IsActive: true}
	store.persons[2] = &salespersons.SalesPerson{ID: 2, Name: "Mohan", IsActive: false}
	return store
}

func TestCreateBillDebitsStockAtomicallyWithInsert(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)

	bill, err := svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID:    1,
		SalesPersonID: 1,
		IsGSTBill:     true,
		Items: []CartItemRequest{
			{ProductID: 1, Quantity: 2},
		},
	})
	require.NoError(t, err)

	fyShort := FiscalYearShort(time.Now().UTC())
	require.Equal(t, FormatInvoiceNumber("NH", 1, fyShort), bill.InvoiceNumber)
	require.Equal(t, "Sharma Stores", bill.CustomerName)
	require.Equal(t, "Ravi", bill.SalesPersonName)

	// intra-state: 200 taxable, 5% split between CGST and SGST
	require.InDelta(t, 200, bill.TaxableAmount, 1e-9)
	// report math divides by SubTotal expecting the taxable amount,
	// not an MRP-basis sum (which would be 240 here)
	require.InDelta(t, bill.TaxableAmount, bill.SubTotal, 1e-9)
	require.InDelta(t, 5, bill.CGSTAmount, 1e-9)
	require.InDelta(t, 5, bill.SGSTAmount, 1e-9)
	require.Zero(t, bill.IGSTAmount)
	require.InDelta(t, 210, bill.GrandTotal, 1e-9)

	require.Equal(t, 8, store.products[1].CurrentStock)
	require.Len(t, store.history, 1)
	require.Equal(t, inventory.ReasonSale, store.history[0].Reason)
	require.Equal(t, "Invoice: "+bill.InvoiceNumber, store.history[0].Reference)
	require.Equal(t, -2, store.history[0].ChangeAmount)
}

func TestCreateBillInterStateUsesIGST(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)

	bill, err := svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID:    2,
		SalesPersonID: 1,
		IsGSTBill:     true,
		Items:         []CartItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	require.InDelta(t, 10, bill.IGSTAmount, 1e-9)
	require.Zero(t, bill.CGSTAmount)
	require.Zero(t, bill.SGSTAmount)
}

func TestCreateBillSequenceAdvances(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)

	first, err := svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	fyShort := FiscalYearShort(time.Now().UTC())
	require.Equal(t, FormatInvoiceNumber("NH", 1, fyShort), first.InvoiceNumber)
	require.Equal(t, FormatInvoiceNumber("NH", 2, fyShort), second.InvoiceNumber)
}

func TestCreateBillCumulativeQuantityExceedsStock(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)

	// two lines of the same product, each within stock, together over it
	_, err := svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1,
		Items: []CartItemRequest{
			{ProductID: 2, Quantity: 3},
			{ProductID: 2, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing was written
	require.Equal(t, 4, store.products[2].CurrentStock)
	require.Empty(t, store.bills)
	require.Empty(t, store.history)
}

func TestCreateBillValidation(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.CreateBill(ctx, CreateBillRequest{CustomerID: 1, SalesPersonID: 1})
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 99, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)

	// GST bill against a customer without a GSTIN
	_, err = svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1, IsGSTBill: true,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrGSTINRequired)

	_, err = svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 1, SalesPersonID: 99,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrSalesPersonNotFound)

	_, err = svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 1, SalesPersonID: 2,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrSalesPersonInactive)

	_, err = svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 1, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 99, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateBillRetriesOnDuplicateNumber(t *testing.T) {
	store := seedStore()
	store.duplicateInserts = 1
	svc := newTestService(store)

	bill, err := svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotZero(t, bill.ID)
	require.Len(t, store.bills, 1)
}

func TestDeleteBillReversesStock(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, store.products[1].CurrentStock)

	require.NoError(t, svc.DeleteBill(ctx, bill.ID))

	require.Equal(t, 10, store.products[1].CurrentStock)
	require.Empty(t, store.bills)

	last := store.history[len(store.history)-1]
	require.Equal(t, inventory.ReasonBillDeleted, last.Reason)
	require.Equal(t, "Reversed: "+bill.InvoiceNumber, last.Reference)
	require.Equal(t, 4, last.ChangeAmount)

	require.ErrorIs(t, svc.DeleteBill(ctx, bill.ID), ErrBillNotFound)
}

func TestMergeCustomersRewritesSnapshots(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 1, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	rewritten, err := svc.MergeCustomers(ctx, MergeCustomersRequest{FromID: 1, ToID: 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), rewritten)

	merged, err := svc.Get(ctx, bill.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), merged.CustomerID)
	require.Equal(t, "Mumbai Traders", merged.CustomerName)
	require.Equal(t, "27ABCDE1234F1Z5", *merged.CustomerGSTIN)

	require.Contains(t, store.deletedCustomers, int64(1))

	_, err = svc.MergeCustomers(ctx, MergeCustomersRequest{FromID: 2, ToID: 2})
	require.ErrorIs(t, err, ErrMergeSameCustomer)
}

func TestValidateCartReportsIssuesWithoutMutation(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)

	result, err := svc.ValidateCart(context.Background(), ValidateCartRequest{
		CustomerID: 3,
		IsGSTBill:  true,
		Items: []CartItemRequest{
			{ProductID: 2, Quantity: 10},
			{ProductID: 99, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.False(t, result.OK)
	require.Len(t, result.Issues, 3) // missing GSTIN, over stock, unknown product

	require.Equal(t, 4, store.products[2].CurrentStock)
	require.Empty(t, store.bills)
}

func TestNextInvoiceNumberPreviewDoesNotConsume(t *testing.T) {
	store := seedStore()
	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.NextInvoiceNumberPreview(ctx)
	require.NoError(t, err)
	second, err := svc.NextInvoiceNumberPreview(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	bill, err := svc.CreateBill(ctx, CreateBillRequest{
		CustomerID: 3, SalesPersonID: 1,
		Items: []CartItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, first, bill.InvoiceNumber)
}
