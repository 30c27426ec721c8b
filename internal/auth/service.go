package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhw-erp/nhw-erp/internal/shared"
)

// DefaultAdminEmail is the account seeded into an empty database.
const DefaultAdminEmail = "admin@nhw.local"

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Authenticate validates email/password credentials. Every failure
// mode collapses into ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// SeedAdmin creates the default admin account when the user table is
// empty. The generated password must be rotated after first login.
func (s *Service) SeedAdmin(ctx context.Context, password string) error {
	if password == "" {
		return errors.New("auth: seed password required")
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := s.repo.Create(ctx, DefaultAdminEmail, string(hash))
	if err != nil {
		return err
	}
	s.logger.Info("seeded default admin account",
		slog.Int64("user_id", id), slog.String("email", DefaultAdminEmail))
	return nil
}
