package client

import (
	"context"

	"github.com/dmitrijs2005/drawgallery/internal/rpc"
)

// Client is what the CLI needs from the gallery server.
type Client interface {
	Close() error
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool
	Ping(ctx context.Context) error
	ListDrawings(ctx context.Context) ([]*rpc.Drawing, error)
	GetDrawing(ctx context.Context, id string) (*rpc.Drawing, error)
	SaveDrawing(ctx context.Context, id, name, content string) (*rpc.Drawing, bool, error)
}
