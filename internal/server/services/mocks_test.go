package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/dbx"
	"github.com/dmitrijs2005/drawgallery/internal/server/auth"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/drawings"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*models.Account)
	return a, args.Error(1)
}

func (m *mockAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	args := m.Called(ctx, a)
	out, _ := args.Get(0).(*models.Account)
	return out, args.Error(1)
}

type mockDrawings struct{ mock.Mock }

func (m *mockDrawings) FindByID(ctx context.Context, id string) (*models.Drawing, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*models.Drawing)
	return d, args.Error(1)
}

func (m *mockDrawings) FindAllByOwner(ctx context.Context, ownerID string) ([]*models.Drawing, error) {
	args := m.Called(ctx, ownerID)
	l, _ := args.Get(0).([]*models.Drawing)
	return l, args.Error(1)
}

func (m *mockDrawings) Create(ctx context.Context, ownerID, name, content string) (*models.Drawing, error) {
	args := m.Called(ctx, ownerID, name, content)
	d, _ := args.Get(0).(*models.Drawing)
	return d, args.Error(1)
}

func (m *mockDrawings) Update(ctx context.Context, id, ownerID, name, content string) (*models.Drawing, error) {
	args := m.Called(ctx, id, ownerID, name, content)
	d, _ := args.Get(0).(*models.Drawing)
	return d, args.Error(1)
}

type fakeRepoManager struct {
	accounts *mockAccounts
	drawings *mockDrawings
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{accounts: &mockAccounts{}, drawings: &mockDrawings{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accounts.Repository      { return m.accounts }
func (m *fakeRepoManager) Drawings(dbx.DBTX) drawings.Repository      { return m.drawings }

var cheapArgon2 = auth.Argon2Params{Time: 1, Memory: 1024, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newHasher(t *testing.T) *auth.Argon2Hasher {
	t.Helper()
	h, err := auth.NewArgon2Hasher(cheapArgon2)
	require.NoError(t, err)
	return h
}

func newAuthenticator(t *testing.T) *auth.Authenticator {
	t.Helper()
	a, err := auth.NewAuthenticator([]byte("service-test-secret"), time.Hour)
	require.NoError(t, err)
	return a
}

func issue(t *testing.T, a *auth.Authenticator, userID string) string {
	t.Helper()
	tok, err := a.Issue(userID)
	require.NoError(t, err)
	return tok
}
