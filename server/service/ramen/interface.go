package ramen

import (
	"context"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/extract"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/ranking"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/recommend"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// ShopStore is the subset of *store.Store the service needs.
type ShopStore interface {
	Ping(ctx context.Context) error
	CreateShop(ctx context.Context, create *store.Shop) (*store.Shop, error)
	ListShops(ctx context.Context, find *store.FindShop) ([]*store.Shop, error)
	UpdateShop(ctx context.Context, update *store.UpdateShop) (*store.Shop, error)
	DeleteShop(ctx context.Context, delete *store.DeleteShop) error
}

// DraftExtractor structures a free-form note.
type DraftExtractor interface {
	Extract(ctx context.Context, text string) (*extract.ShopDraft, error)
}

// Advisor writes the comment for the logged match and proposes a shop
// outside the log. Neither call fails.
type Advisor interface {
	Comment(ctx context.Context, query string, shop ranking.Candidate) string
	SuggestWeb(ctx context.Context, query string, shop ranking.Candidate) *recommend.Suggestion
}

// ShopInput is a shop as submitted for registration or update.
type ShopInput struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rating     int32    `json:"rating"`
	Location   string   `json:"location"`
	Review     string   `json:"review"`
}

// ShopView is a stored shop without its embedding.
type ShopView struct {
	ID         int32    `json:"id"`
	UID        string   `json:"uid"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rating     int32    `json:"rating"`
	Location   string   `json:"location"`
	Review     string   `json:"review"`
	CreatedTs  int64    `json:"created_ts"`
	UpdatedTs  int64    `json:"updated_ts"`
}

// Match is one search result.
type Match struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rating     float64  `json:"rating"`
	Location   string   `json:"location"`
	Review     string   `json:"review"`
	Similarity float64  `json:"similarity"`
	AIComment  string   `json:"ai_comment"`
}

// SearchResult holds at most one logged match and one outside suggestion.
type SearchResult struct {
	DBMatch  []Match `json:"db_match"`
	WebMatch []Match `json:"web_match"`
}
