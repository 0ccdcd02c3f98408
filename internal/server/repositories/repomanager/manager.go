// Package repomanager vends repository implementations for the configured
// database and owns the connection and schema setup for it.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/drawgallery/internal/dbx"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/drawings"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Drawings(db dbx.DBTX) drawings.Repository
}
