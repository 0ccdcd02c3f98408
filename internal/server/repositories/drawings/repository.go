// Package drawings is the record store for drawings. It knows nothing about
// tokens; callers pass the owner id they have already authenticated.
package drawings

import (
	"context"

	"github.com/dmitrijs2005/drawgallery/internal/server/models"
)

// Repository is implemented for PostgreSQL and SQLite.
//
// FindByID returns common.ErrorNotFound when no drawing has the id.
// FindAllByOwner returns the owner's drawings newest first, and an empty
// slice when there are none.
// Update writes only when both id and ownerID match a stored row; otherwise
// it returns common.ErrorNotFound and changes nothing.
type Repository interface {
	FindByID(ctx context.Context, id string) (*models.Drawing, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]*models.Drawing, error)
	Create(ctx context.Context, ownerID, name, content string) (*models.Drawing, error)
	Update(ctx context.Context, id, ownerID, name, content string) (*models.Drawing, error)
}
