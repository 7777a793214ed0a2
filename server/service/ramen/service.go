// Package ramen implements the concierge operations: parse a note, keep the
// shop log and search it.
package ramen

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/extract"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/ranking"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/recommend"
	apierrors "github.com/watayuraType-C/playground-ramen-concierge/server/internal/errors"
	"github.com/watayuraType-C/playground-ramen-concierge/server/internal/observability"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
)

// Service is the ramen concierge.
type Service struct {
	store     ShopStore
	embedder  Embedder
	extractor DraftExtractor
	advisor   Advisor
}

// NewService creates a new Service.
func NewService(store ShopStore, embedder Embedder, extractor DraftExtractor, advisor Advisor) *Service {
	return &Service{
		store:     store,
		embedder:  embedder,
		extractor: extractor,
		advisor:   advisor,
	}
}

// Parse extracts a shop draft from a free-form note.
func (s *Service) Parse(ctx context.Context, text string) (*extract.ShopDraft, error) {
	if !validText(text) {
		return nil, apierrors.BadRequest("入力内容が不足しているか、形式が正しくありません。")
	}

	draft, err := s.extractor.Extract(ctx, text)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrParseFailure):
			return nil, apierrors.Wrap(err, apierrors.ErrCodeParseFailure, "AIの回答形式が正しくありませんでした。")
		case errors.Is(err, extract.ErrInvalidFormat):
			return nil, apierrors.Wrap(err, apierrors.ErrCodeInvalidFormat, "AIの回答がオブジェクトではありませんでした。")
		case errors.Is(err, extract.ErrInvalidResponse):
			return nil, apierrors.Wrap(err, apierrors.ErrCodeInvalidAIResponse, "解析データが不完全です。")
		default:
			return nil, apierrors.Wrap(err, apierrors.ErrCodeAIUnavailable, "AIとの通信に失敗しました。しばらく時間を置いてから再度お試しください。")
		}
	}
	return draft, nil
}

// Register validates, embeds and stores a new shop.
func (s *Service) Register(ctx context.Context, input *ShopInput) (*ShopView, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	if err := s.store.Ping(ctx); err != nil {
		return nil, apierrors.Wrap(err, apierrors.ErrCodeDatabaseUnavailable, "データベースが応答しません。しばらくしてから再度お試しください。")
	}

	embedding, err := s.embedShop(ctx, input)
	if err != nil {
		return nil, err
	}

	shop, err := s.store.CreateShop(ctx, &store.Shop{
		Name:       input.Name,
		Categories: input.Categories,
		Rating:     input.Rating,
		Location:   input.Location,
		Review:     input.Review,
		Embedding:  embedding,
		Model:      s.embedder.Model(),
	})
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.ErrCodeDatabaseInsert, "データベースへの登録に失敗しました。")
	}

	observability.Logger(ctx).Info("registered shop", slog.Int("id", int(shop.ID)), slog.String("name", shop.Name))
	return toView(shop), nil
}

// List returns every shop, newest first, without embeddings.
func (s *Service) List(ctx context.Context) ([]*ShopView, error) {
	shops, err := s.store.ListShops(ctx, &store.FindShop{})
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.ErrCodeDatabaseConnection, "データの取得に失敗しました。")
	}
	views := make([]*ShopView, 0, len(shops))
	for _, shop := range shops {
		views = append(views, toView(shop))
	}
	return views, nil
}

// Update replaces a shop's fields and recomputes its embedding.
func (s *Service) Update(ctx context.Context, id int32, input *ShopInput) (*ShopView, error) {
	if id <= 0 {
		return nil, apierrors.BadRequest("更新するIDが指定されていません。")
	}
	if err := input.normalize(); err != nil {
		return nil, err
	}

	embedding, err := s.embedShop(ctx, input)
	if err != nil {
		return nil, err
	}

	model := s.embedder.Model()
	shop, err := s.store.UpdateShop(ctx, &store.UpdateShop{
		ID:         id,
		Name:       &input.Name,
		Categories: &input.Categories,
		Rating:     &input.Rating,
		Location:   &input.Location,
		Review:     &input.Review,
		Embedding:  embedding,
		Model:      &model,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierrors.NotFound("指定されたラーメン店が見つかりません。")
		}
		return nil, apierrors.Wrap(err, apierrors.ErrCodeDatabaseInsert, "更新に失敗しました。")
	}
	return toView(shop), nil
}

// Delete removes a shop.
func (s *Service) Delete(ctx context.Context, id int32) error {
	if id <= 0 {
		return apierrors.BadRequest("削除するIDが指定されていません。")
	}
	if err := s.store.DeleteShop(ctx, &store.DeleteShop{ID: id}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierrors.NotFound("指定されたラーメン店が見つかりません。")
		}
		return apierrors.Wrap(err, apierrors.ErrCodeDatabaseConnection, "削除に失敗しました。")
	}
	return nil
}

// Search finds the logged shop closest to the request and, in parallel,
// writes a comment for it and proposes one shop from outside the log.
func (s *Service) Search(ctx context.Context, text string) (*SearchResult, error) {
	if !validText(text) {
		return nil, apierrors.Validation("検索テキストは1文字以上1000文字以内で入力してください。")
	}

	vector, err := s.embedder.Embed(ctx, ai.CleanQuery(text))
	if err != nil {
		return nil, apierrors.AIUnavailable(err)
	}

	shops, err := s.store.ListShops(ctx, &store.FindShop{WithEmbedding: true})
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.ErrCodeDatabaseConnection, "データベースからの取得に失敗しました。")
	}
	if len(shops) == 0 {
		return nil, apierrors.New(apierrors.ErrCodeNoRamenData, "登録されているラーメン店がありません。まずはラーメン店を登録してください。")
	}

	candidates := make([]ranking.Candidate, 0, len(shops))
	for _, shop := range shops {
		candidates = append(candidates, toCandidate(shop))
	}
	best, ok := ranking.Rank(candidates, toFloat64(vector))
	if !ok {
		return nil, apierrors.New(apierrors.ErrCodeNoRamenData, "登録されているラーメン店がありません。")
	}

	var comment string
	var suggestion *recommend.Suggestion
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comment = s.advisor.Comment(gctx, text, best.Candidate)
		return nil
	})
	g.Go(func() error {
		suggestion = s.advisor.SuggestWeb(gctx, text, best.Candidate)
		return nil
	})
	_ = g.Wait()

	result := &SearchResult{DBMatch: []Match{}, WebMatch: []Match{}}
	dbMatch := Match{
		Name:       best.Name,
		Categories: best.Categories,
		Rating:     float64(best.Rating),
		Location:   best.Location,
		Review:     best.Review,
		Similarity: best.Similarity,
		AIComment:  comment,
	}
	if dbMatch.Name != "" {
		result.DBMatch = append(result.DBMatch, dbMatch)
	} else {
		observability.Logger(ctx).Warn("dropping db match without a name", slog.Int("id", int(best.ID)))
	}
	if suggestion != nil {
		result.WebMatch = append(result.WebMatch, Match{
			Name:       suggestion.Name,
			Categories: suggestion.Categories,
			Rating:     suggestion.Rating,
			Location:   suggestion.Location,
			Review:     suggestion.Review,
			Similarity: suggestion.Similarity,
			AIComment:  suggestion.AIComment,
		})
	}
	return result, nil
}

func (s *Service) embedShop(ctx context.Context, input *ShopInput) ([]float32, error) {
	embedding, err := s.embedder.Embed(ctx, ai.ShopText(input.Name, input.Categories, input.Location, input.Review))
	if err != nil {
		return nil, apierrors.AIUnavailable(err)
	}
	return embedding, nil
}

func toView(shop *store.Shop) *ShopView {
	categories := shop.Categories
	if categories == nil {
		categories = []string{}
	}
	return &ShopView{
		ID:         shop.ID,
		UID:        shop.UID,
		Name:       shop.Name,
		Categories: categories,
		Rating:     shop.Rating,
		Location:   shop.Location,
		Review:     shop.Review,
		CreatedTs:  shop.CreatedTs,
		UpdatedTs:  shop.UpdatedTs,
	}
}

func toCandidate(shop *store.Shop) ranking.Candidate {
	return ranking.Candidate{
		ID:         shop.ID,
		UID:        shop.UID,
		Name:       shop.Name,
		Categories: shop.Categories,
		Rating:     shop.Rating,
		Location:   shop.Location,
		Review:     shop.Review,
		Embedding:  shop.RawEmbedding,
	}
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
