package salespersons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

type memoryPersons struct {
	items  map[int64]SalesPerson
	nextID int64
}

func newMemoryPersons() *memoryPersons {
	return &memoryPersons{items: make(map[int64]SalesPerson)}
}

func (m *memoryPersons) Get(_ context.Context, id int64) (*SalesPerson, error) {
	sp, ok := m.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &sp, nil
}

func (m *memoryPersons) List(_ context.Context, activeOnly bool) ([]SalesPerson, error) {
	var out []SalesPerson
	for _, sp := range m.items {
		if activeOnly && !sp.IsActive {
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}

func (m *memoryPersons) Create(_ context.Context, sp SalesPerson) (int64, error) {
	m.nextID++
	sp.ID = m.nextID
	m.items[sp.ID] = sp
	return sp.ID, nil
}

func (m *memoryPersons) Update(_ context.Context, id int64, sp SalesPerson) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	sp.ID = id
	m.items[id] = sp
	return nil
}

func TestCreateTrimsAndActivates(t *testing.T) {
	svc := NewService(newMemoryPersons(), notify.Noop{})

	sp, err := svc.Create(context.Background(), "  Ramesh Kumar ")
	require.NoError(t, err)
	require.Equal(t, "Ramesh Kumar", sp.Name)
	require.True(t, sp.IsActive)

	_, err = svc.Create(context.Background(), "   ")
	require.Error(t, err)
}

func TestDeactivateHidesFromActiveList(t *testing.T) {
	repo := newMemoryPersons()
	svc := NewService(repo, notify.Noop{})

	sp, err := svc.Create(context.Background(), "Priya Sharma")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), sp.ID, "Priya Sharma", false)
	require.NoError(t, err)

	active, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateMissingPerson(t *testing.T) {
	svc := NewService(newMemoryPersons(), notify.Noop{})

	_, err := svc.Update(context.Background(), 42, "Nobody", true)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
