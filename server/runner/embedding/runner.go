package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
)

// ShopStore is the part of *store.Store the runner uses.
type ShopStore interface {
	ListShops(ctx context.Context, find *store.FindShop) ([]*store.Shop, error)
	UpdateShop(ctx context.Context, update *store.UpdateShop) (*store.Shop, error)
}

// Runner backfills embeddings for shops stored without one, such as seeded
// demo shops or shops registered while the embedding service was down.
type Runner struct {
	store            ShopStore
	embeddingService ai.EmbeddingService
	interval         time.Duration
	batchSize        int
}

// NewRunner creates an embedding backfill runner.
func NewRunner(store ShopStore, embeddingService ai.EmbeddingService) *Runner {
	return &Runner{
		store:            store,
		embeddingService: embeddingService,
		interval:         5 * time.Minute,
		batchSize:        16,
	}
}

// Run processes pending shops once, then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	r.processPendingShops(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.processPendingShops(ctx)
		case <-ctx.Done():
			slog.Info("embedding runner stopped")
			return
		}
	}
}

// RunOnce processes pending shops once.
func (r *Runner) RunOnce(ctx context.Context) {
	r.processPendingShops(ctx)
}

func (r *Runner) processPendingShops(ctx context.Context) {
	limit := r.batchSize * 20
	shops, err := r.store.ListShops(ctx, &store.FindShop{
		MissingEmbedding: true,
		Limit:            &limit,
	})
	if err != nil {
		slog.Error("failed to find shops without embedding", "error", err)
		return
	}
	if len(shops) == 0 {
		return
	}

	slog.Info("processing shops for embedding", "count", len(shops))

	for i := 0; i < len(shops); i += r.batchSize {
		select {
		case <-ctx.Done():
			slog.Info("embedding processing cancelled", "processed", i, "total", len(shops))
			return
		default:
		}

		end := min(i+r.batchSize, len(shops))
		batch := shops[i:end]
		if err := r.processBatch(ctx, batch); err != nil {
			slog.Error("failed to process batch", "error", err)
			continue
		}
		slog.Info("batch processed", "count", len(batch), "progress", fmt.Sprintf("%d/%d", end, len(shops)))
	}
}

func (r *Runner) processBatch(ctx context.Context, shops []*store.Shop) error {
	texts := make([]string, len(shops))
	for i, shop := range shops {
		texts[i] = ai.ShopText(shop.Name, shop.Categories, shop.Location, shop.Review)
	}

	vectors, err := r.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return errors.Wrap(err, "failed to embed batch")
	}
	if len(vectors) != len(shops) {
		return errors.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(shops))
	}

	model := r.embeddingService.Model()
	for i, shop := range shops {
		if len(vectors[i]) == 0 {
			slog.Warn("empty embedding returned", "shopID", shop.ID)
			continue
		}
		_, err := r.store.UpdateShop(ctx, &store.UpdateShop{
			ID:        shop.ID,
			Embedding: vectors[i],
			Model:     &model,
		})
		if err != nil {
			slog.Error("failed to store embedding", "shopID", shop.ID, "error", err)
		}
	}
	return nil
}
