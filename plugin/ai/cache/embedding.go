package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai"
)

// EmbeddingService caches single-text embeddings in front of another
// EmbeddingService. Batches always go to the wrapped service.
type EmbeddingService struct {
	ai.EmbeddingService

	lru *LRUCache
	ttl time.Duration
}

var _ ai.EmbeddingService = (*EmbeddingService)(nil)

// NewEmbeddingService wraps inner with an LRU of the given capacity and ttl.
func NewEmbeddingService(inner ai.EmbeddingService, capacity int, ttl time.Duration) *EmbeddingService {
	return &EmbeddingService{
		EmbeddingService: inner,
		lru:              NewLRUCache(capacity, ttl),
		ttl:              ttl,
	}
}

func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := s.key(text)
	if vector, ok := s.lru.Get(key); ok {
		return vector, nil
	}

	vector, err := s.EmbeddingService.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	s.lru.Set(key, vector, s.ttl)
	return vector, nil
}

// Run drops expired entries every interval until ctx is done.
func (s *EmbeddingService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.lru.CleanupExpired()
		}
	}
}

// The model is part of the key so a model switch never serves stale vectors.
func (s *EmbeddingService) key(text string) string {
	sum := sha256.Sum256([]byte(s.Model() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
