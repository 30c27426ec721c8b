package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhw-erp/nhw-erp/internal/shared"
)

type memoryUsers struct {
	users  map[string]*User
	nextID int64
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUsers) Create(_ context.Context, email, passwordHash string) (int64, error) {
	m.nextID++
	m.users[email] = &User{ID: m.nextID, Email: email, PasswordHash: passwordHash, IsActive: true}
	return m.nextID, nil
}

func (m *memoryUsers) Count(context.Context) (int, error) {
	return len(m.users), nil
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &memoryUsers{users: map[string]*User{
		"admin@nhw.local":    {ID: 1, Email: "admin@nhw.local", PasswordHash: string(hash), IsActive: true},
		"disabled@nhw.local": {ID: 2, Email: "disabled@nhw.local", PasswordHash: string(hash), IsActive: false},
	}}
	svc := NewService(repo, slog.Default())
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "admin@nhw.local", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	_, err = svc.Authenticate(ctx, "admin@nhw.local", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "disabled@nhw.local", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "missing@nhw.local", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestSeedAdminOnlyOnEmptyTable(t *testing.T) {
	repo := &memoryUsers{users: map[string]*User{}}
	svc := NewService(repo, slog.Default())
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "changeme-now"))
	require.Len(t, repo.users, 1)

	seeded := repo.users[DefaultAdminEmail]
	require.NotNil(t, seeded)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(seeded.PasswordHash), []byte("changeme-now")))

	// second run is a no-op
	require.NoError(t, svc.SeedAdmin(ctx, "other-password"))
	require.Len(t, repo.users, 1)

	require.Error(t, svc.SeedAdmin(ctx, ""))
}
