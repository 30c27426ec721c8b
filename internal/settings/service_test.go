package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhw-erp/nhw-erp/internal/notify"
)

type memorySettings struct {
	saved *CompanySettings
}

func (m *memorySettings) Get(_ context.Context) (CompanySettings, error) {
	if m.saved == nil {
		return Defaults(), nil
	}
	return *m.saved, nil
}

func (m *memorySettings) Save(_ context.Context, s CompanySettings) error {
	m.saved = &s
	return nil
}

func TestGetFallsBackToDefaults(t *testing.T) {
	svc := NewService(&memorySettings{}, notify.Noop{})

	cs, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "NH", cs.InvoicePrefix)
	require.Equal(t, DefaultStateCode, cs.StateCode)
	require.Equal(t, 1, cs.InvoiceStartNumber)
}

func TestUpdateValidation(t *testing.T) {
	svc := NewService(&memorySettings{}, notify.Noop{})
	valid := Defaults()

	cs := valid
	cs.Name = "  "
	require.ErrorContains(t, svc.Update(context.Background(), cs), "company name")

	cs = valid
	cs.InvoicePrefix = ""
	require.ErrorContains(t, svc.Update(context.Background(), cs), "prefix")

	cs = valid
	cs.InvoicePrefix = "NH/K"
	require.ErrorContains(t, svc.Update(context.Background(), cs), "prefix")

	cs = valid
	cs.StateCode = "1A"
	require.ErrorContains(t, svc.Update(context.Background(), cs), "state code")
}

func TestUpdateFloorsStartNumber(t *testing.T) {
	repo := &memorySettings{}
	svc := NewService(repo, notify.Noop{})

	cs := Defaults()
	cs.InvoiceStartNumber = 0
	require.NoError(t, svc.Update(context.Background(), cs))
	require.Equal(t, 1, repo.saved.InvoiceStartNumber)
}
