package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

type memoryProducts struct {
	items  map[int64]Product
	nextID int64
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{items: make(map[int64]Product)}
}

func (m *memoryProducts) List(_ context.Context, filters shared.ListFilters) ([]Product, int, error) {
	out := make([]Product, 0, len(m.items))
	for _, p := range m.items {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memoryProducts) Get(_ context.Context, id int64) (Product, error) {
	p, ok := m.items[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (m *memoryProducts) Create(_ context.Context, p Product) (Product, error) {
	m.nextID++
	p.ID = m.nextID
	m.items[p.ID] = p
	return p, nil
}

func (m *memoryProducts) Update(_ context.Context, id int64, p Product) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	p.ID = id
	m.items[id] = p
	return nil
}

func (m *memoryProducts) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryProducts) ListBelowMinStock(_ context.Context) ([]Product, error) {
	var out []Product
	for _, p := range m.items {
		if p.CurrentStock <= p.MinStockLevel {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreateDerivesSellingPrice(t *testing.T) {
	repo := newMemoryProducts()
	svc := NewService(repo, notify.Noop{})

	created, err := svc.Create(context.Background(), CreateProductRequest{
		Name:            "  Ashwagandha Churna ",
		Category:        "Churna",
		Unit:            "bottle",
		MRP:             200,
		DiscountPercent: 10,
		PurchasePrice:   120,
		GSTRate:         5,
		CurrentStock:    50,
		MinStockLevel:   10,
	})
	require.NoError(t, err)
	require.Equal(t, "Ashwagandha Churna", created.Name)
	require.InDelta(t, 180, created.SellingPrice, 0.001)
	require.Equal(t, 50, created.CurrentStock)
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := NewService(newMemoryProducts(), notify.Noop{})

	_, err := svc.Create(context.Background(), CreateProductRequest{Category: "Churna", Unit: "pc", MRP: 100})
	require.ErrorContains(t, err, "name")

	_, err = svc.Create(context.Background(), CreateProductRequest{Name: "Tulsi Drops", Unit: "pc", MRP: 100})
	require.ErrorContains(t, err, "category")

	_, err = svc.Create(context.Background(), CreateProductRequest{Name: "Tulsi Drops", Category: "Drops", Unit: "pc"})
	require.ErrorContains(t, err, "MRP")
}

func TestUpdateKeepsStockAndRecomputesPrice(t *testing.T) {
	repo := newMemoryProducts()
	svc := NewService(repo, notify.Noop{})

	created, err := svc.Create(context.Background(), CreateProductRequest{
		Name: "Triphala", Category: "Churna", Unit: "jar",
		MRP: 150, DiscountPercent: 0, CurrentStock: 30, MinStockLevel: 5,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateProductRequest{
		Name: "Triphala Churna", Category: "Churna", Unit: "jar",
		MRP: 180, DiscountPercent: 25, MinStockLevel: 8,
	})
	require.NoError(t, err)
	require.InDelta(t, 135, updated.SellingPrice, 0.001)
	require.Equal(t, 30, updated.CurrentStock)
	require.Equal(t, 8, updated.MinStockLevel)
}

func TestGetRejectsInvalidID(t *testing.T) {
	svc := NewService(newMemoryProducts(), notify.Noop{})

	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrInvalidID)

	err = svc.Delete(context.Background(), -3)
	require.ErrorIs(t, err, shared.ErrInvalidID)
}

func TestListLowStock(t *testing.T) {
	repo := newMemoryProducts()
	repo.items[1] = Product{ID: 1, Name: "Neem Capsules", CurrentStock: 2, MinStockLevel: 5}
	repo.items[2] = Product{ID: 2, Name: "Amla Juice", CurrentStock: 40, MinStockLevel: 5}
	svc := NewService(repo, notify.Noop{})

	low, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, int64(1), low[0].ID)
}
