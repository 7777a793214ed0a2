package ramen

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/extract"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/ranking"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/recommend"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
)

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	vector, _ := args.Get(0).([]float32)
	return vector, args.Error(1)
}

func (*mockEmbedder) Model() string {
	return "test-embedding"
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) CreateShop(ctx context.Context, create *store.Shop) (*store.Shop, error) {
	args := m.Called(ctx, create)
	shop, _ := args.Get(0).(*store.Shop)
	return shop, args.Error(1)
}

func (m *mockStore) ListShops(ctx context.Context, find *store.FindShop) ([]*store.Shop, error) {
	args := m.Called(ctx, find)
	shops, _ := args.Get(0).([]*store.Shop)
	return shops, args.Error(1)
}

func (m *mockStore) UpdateShop(ctx context.Context, update *store.UpdateShop) (*store.Shop, error) {
	args := m.Called(ctx, update)
	shop, _ := args.Get(0).(*store.Shop)
	return shop, args.Error(1)
}

func (m *mockStore) DeleteShop(ctx context.Context, delete *store.DeleteShop) error {
	return m.Called(ctx, delete).Error(0)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, text string) (*extract.ShopDraft, error) {
	args := m.Called(ctx, text)
	draft, _ := args.Get(0).(*extract.ShopDraft)
	return draft, args.Error(1)
}

type mockAdvisor struct {
	mock.Mock
}

func (m *mockAdvisor) Comment(ctx context.Context, query string, shop ranking.Candidate) string {
	return m.Called(ctx, query, shop).String(0)
}

func (m *mockAdvisor) SuggestWeb(ctx context.Context, query string, shop ranking.Candidate) *recommend.Suggestion {
	suggestion, _ := m.Called(ctx, query, shop).Get(0).(*recommend.Suggestion)
	return suggestion
}
