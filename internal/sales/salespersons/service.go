package salespersons

import (
	"context"
	"errors"
	"strings"

	"github.com/nhw-erp/nhw-erp/internal/notify"
)

type Service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Get(ctx context.Context, id int64) (*SalesPerson, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]SalesPerson, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Create(ctx context.Context, name string) (*SalesPerson, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("salespersons: name is required")
	}
	id, err := s.repo.Create(ctx, SalesPerson{Name: name, IsActive: true})
	if err != nil {
		return nil, err
	}
	s.notifier.Changed(ctx, notify.EntitySalesPersons)
	return s.repo.Get(ctx, id)
}

// Update renames a sales person and/or toggles the active flag.
// Deactivation never touches historical bills.
func (s *Service) Update(ctx context.Context, id int64, name string, isActive bool) (*SalesPerson, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("salespersons: name is required")
	}
	if err := s.repo.Update(ctx, id, SalesPerson{Name: name, IsActive: isActive}); err != nil {
		return nil, err
	}
	s.notifier.Changed(ctx, notify.EntitySalesPersons)
	return s.repo.Get(ctx, id)
}
