// Package accounts stores gallery accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/drawgallery/internal/server/models"
)

// Repository looks accounts up by email and provisions new ones.
// GetByEmail returns common.ErrorNotFound for an unknown email; Create
// returns common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
}
