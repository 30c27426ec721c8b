package settings

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/nhw-erp/nhw-erp/internal/notify"
)

var stateCodePattern = regexp.MustCompile(`^[0-9]{2}$`)

// Service wraps company settings business rules.
type Service struct {
	repo     Repository
	notifier notify.Notifier
}

// NewService constructs a Service.
func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Get returns the current company settings, falling back to defaults.
func (s *Service) Get(ctx context.Context) (CompanySettings, error) {
	return s.repo.Get(ctx)
}

// Update validates and persists the company settings.
func (s *Service) Update(ctx context.Context, cs CompanySettings) error {
	if strings.TrimSpace(cs.Name) == "" {
		return errors.New("settings: company name is required")
	}
	if strings.TrimSpace(cs.InvoicePrefix) == "" {
		return errors.New("settings: invoice prefix is required")
	}
	if strings.Contains(cs.InvoicePrefix, "/") {
		return errors.New("settings: invoice prefix must not contain '/'")
	}
	if cs.StateCode != "" && !stateCodePattern.MatchString(cs.StateCode) {
		return errors.New("settings: state code must be two digits")
	}
	if cs.InvoiceStartNumber < 1 {
		cs.InvoiceStartNumber = 1
	}
	if err := s.repo.Save(ctx, cs); err != nil {
		return err
	}
	s.notifier.Changed(ctx, notify.EntitySettings)
	return nil
}
