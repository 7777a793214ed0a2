package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Shop is a logged ramen-shop visit.
type Shop struct {
	ID         int32
	UID        string
	Name       string
	Categories []string
	Rating     int32
	Location   string
	Review     string

	// Embedding is the vector written on create or update.
	Embedding []float32
	// RawEmbedding is the stored vector exactly as the driver returned it
	// (pgvector text on PostgreSQL, JSON text on SQLite). It is only
	// populated when FindShop.WithEmbedding is set.
	RawEmbedding any
	// Model is the embedding model that produced the vector.
	Model string

	CreatedTs int64
	UpdatedTs int64
}

// FindShop is the find condition for shops.
type FindShop struct {
	ID  *int32
	UID *string

	// WithEmbedding selects the embedding column.
	WithEmbedding bool
	// MissingEmbedding restricts the result to shops without a vector.
	MissingEmbedding bool

	Limit *int
}

// UpdateShop is the update payload for a shop. Nil fields are left untouched.
type UpdateShop struct {
	ID         int32
	Name       *string
	Categories *[]string
	Rating     *int32
	Location   *string
	Review     *string
	Embedding  []float32
	Model      *string
	UpdatedTs  *int64
}

// DeleteShop is the delete condition for a shop.
type DeleteShop struct {
	ID int32
}

// CreateShop assigns a UID and timestamps, then inserts the shop.
func (s *Store) CreateShop(ctx context.Context, create *Shop) (*Shop, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	now := time.Now().Unix()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = create.CreatedTs
	}
	if create.Categories == nil {
		create.Categories = []string{}
	}
	return s.driver.CreateShop(ctx, create)
}

// ListShops lists shops, newest first.
func (s *Store) ListShops(ctx context.Context, find *FindShop) ([]*Shop, error) {
	return s.driver.ListShops(ctx, find)
}

// GetShop gets a single shop. It returns nil without error when nothing matches.
func (s *Store) GetShop(ctx context.Context, find *FindShop) (*Shop, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.driver.ListShops(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateShop updates a shop and stamps updated_ts when the caller did not.
func (s *Store) UpdateShop(ctx context.Context, update *UpdateShop) (*Shop, error) {
	if update.UpdatedTs == nil {
		now := time.Now().Unix()
		update.UpdatedTs = &now
	}
	return s.driver.UpdateShop(ctx, update)
}

// DeleteShop deletes a shop.
func (s *Store) DeleteShop(ctx context.Context, delete *DeleteShop) error {
	return s.driver.DeleteShop(ctx, delete)
}
