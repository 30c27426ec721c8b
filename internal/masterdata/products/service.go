package products

import (
	"context"
	"errors"
	"strings"

	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/shared"
)

type Service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	p := Product{
		Name:            strings.TrimSpace(req.Name),
		Category:        strings.TrimSpace(req.Category),
		HSNCode:         strings.TrimSpace(req.HSNCode),
		Unit:            req.Unit,
		PackageSize:     req.PackageSize,
		BatchNumber:     req.BatchNumber,
		ExpiryDate:      req.ExpiryDate,
		MRP:             req.MRP,
		DiscountPercent: req.DiscountPercent,
		SellingPrice:    SellingPrice(req.MRP, req.DiscountPercent),
		PurchasePrice:   req.PurchasePrice,
		GSTRate:         req.GSTRate,
		CurrentStock:    req.CurrentStock,
		MinStockLevel:   req.MinStockLevel,
	}
	if err := s.validate(p); err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.notifier.Changed(ctx, notify.EntityProducts)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrInvalidID
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	existing.Name = strings.TrimSpace(req.Name)
	existing.Category = strings.TrimSpace(req.Category)
	existing.HSNCode = strings.TrimSpace(req.HSNCode)
	existing.Unit = req.Unit
	existing.PackageSize = req.PackageSize
	existing.BatchNumber = req.BatchNumber
	existing.ExpiryDate = req.ExpiryDate
	existing.MRP = req.MRP
	existing.DiscountPercent = req.DiscountPercent
	existing.SellingPrice = SellingPrice(req.MRP, req.DiscountPercent)
	existing.PurchasePrice = req.PurchasePrice
	existing.GSTRate = req.GSTRate
	existing.MinStockLevel = req.MinStockLevel

	if err := s.validate(existing); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Product{}, err
	}
	s.notifier.Changed(ctx, notify.EntityProducts)
	return existing, nil
}

// Delete removes a product. Historical bill items keep their snapshot
// copies, so dangling references are tolerated downstream.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Changed(ctx, notify.EntityProducts)
	return nil
}

// ListLowStock returns products at or below their minimum stock level.
func (s *Service) ListLowStock(ctx context.Context) ([]Product, error) {
	return s.repo.ListBelowMinStock(ctx)
}

func (s *Service) validate(p Product) error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.Category == "" {
		return errors.New("product category is required")
	}
	if p.MRP <= 0 {
		return errors.New("product MRP must be positive")
	}
	return nil
}
