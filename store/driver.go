package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
	IsInitialized(ctx context.Context) (bool, error)

	// Shop model related methods.
	CreateShop(ctx context.Context, create *Shop) (*Shop, error)
	ListShops(ctx context.Context, find *FindShop) ([]*Shop, error)
	UpdateShop(ctx context.Context, update *UpdateShop) (*Shop, error)
	DeleteShop(ctx context.Context, delete *DeleteShop) error
}
