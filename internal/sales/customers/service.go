package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/nhw-erp/nhw-erp/internal/notify"
)

// ErrInvalidGSTIN indicates a GSTIN that does not match the standard format.
var ErrInvalidGSTIN = errors.New("customers: invalid GSTIN format")

type Service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	c := Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   normalizeGSTIN(req.GSTIN),
	}
	if err := validate(c); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.notifier.Changed(ctx, notify.EntityCustomers)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(req.Name)
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.Email = req.Email
	existing.Address = req.Address
	existing.GSTIN = normalizeGSTIN(req.GSTIN)

	if err := validate(*existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, *existing); err != nil {
		return nil, err
	}
	s.notifier.Changed(ctx, notify.EntityCustomers)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Changed(ctx, notify.EntityCustomers)
	return nil
}

func validate(c Customer) error {
	if c.Name == "" {
		return errors.New("customers: name is required")
	}
	if c.Phone == "" {
		return errors.New("customers: phone is required")
	}
	if c.GSTIN != nil && !ValidGSTIN(*c.GSTIN) {
		return ErrInvalidGSTIN
	}
	return nil
}

func normalizeGSTIN(gstin *string) *string {
	if gstin == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*gstin))
	if v == "" {
		return nil
	}
	return &v
}
