package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/watayuraType-C/playground-ramen-concierge/internal/profile"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/cache"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/extract"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/recommend"
	"github.com/watayuraType-C/playground-ramen-concierge/server/internal/observability"
	ramenmw "github.com/watayuraType-C/playground-ramen-concierge/server/middleware"
	apiv1 "github.com/watayuraType-C/playground-ramen-concierge/server/router/api/v1"
	"github.com/watayuraType-C/playground-ramen-concierge/server/runner/embedding"
	"github.com/watayuraType-C/playground-ramen-concierge/server/service/ramen"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
)

const (
	queryCacheCapacity = 512
	queryCacheTTL      = 30 * time.Minute
	rateLimiterIdle    = 10 * time.Minute
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	embedder   *cache.EmbeddingService
	runner     *embedding.Runner
	limiter    *ramenmw.RateLimiter

	runnerCancelFunc context.CancelFunc
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Store:   store,
		Profile: profile,
	}

	aiConfig := ai.NewConfigFromProfile(profile)
	if !aiConfig.Enabled {
		return nil, errors.New("AI must be enabled: set RAMEN_AI_ENABLED=true and RAMEN_AI_API_KEY")
	}
	if err := aiConfig.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid AI configuration")
	}
	embeddingService, err := ai.NewEmbeddingService(&aiConfig.Embedding)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create embedding service")
	}
	llmService, err := ai.NewLLMService(&aiConfig.LLM)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM service")
	}
	s.embedder = cache.NewEmbeddingService(embeddingService, queryCacheCapacity, queryCacheTTL)
	s.runner = embedding.NewRunner(store, embeddingService)

	ramenService := ramen.NewService(
		store,
		s.embedder,
		extract.NewExtractor(llmService),
		recommend.NewRecommender(llmService),
	)

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.HTTPErrorHandler = apiv1.HTTPErrorHandler
	s.echoServer = echoServer

	metrics := observability.NewMetrics()
	echoServer.Use(middleware.Recover())
	allowOrigins := profile.CORSAllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, ramenmw.HeaderRequestID},
	}))
	echoServer.Use(ramenmw.RequestContext(slog.Default(), metrics))
	if profile.RateLimitPerSecond > 0 {
		s.limiter = ramenmw.NewRateLimiter(profile.RateLimitPerSecond)
		echoServer.Use(s.limiter.Middleware())
	}

	apiV1Service := apiv1.NewAPIV1Service(profile, store, ramenService, metrics)
	apiV1Service.RegisterRoutes(echoServer)

	return s, nil
}

// Start launches the background runners and blocks serving HTTP until
// Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)

	s.StartBackgroundRunners(ctx)

	slog.Info("server listening", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.runnerCancelFunc != nil {
		s.runnerCancelFunc()
	}

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", slog.String("error", err.Error()))
	}

	slog.Info("server stopped properly")
}

func (s *Server) StartBackgroundRunners(ctx context.Context) {
	runnerCtx, cancel := context.WithCancel(ctx)
	s.runnerCancelFunc = cancel

	go s.runner.Run(runnerCtx)
	go s.embedder.Run(runnerCtx, time.Minute)
	if s.limiter != nil {
		go func() {
			ticker := time.NewTicker(rateLimiterIdle)
			defer ticker.Stop()
			for {
				select {
				case <-runnerCtx.Done():
					return
				case <-ticker.C:
					s.limiter.Forget(rateLimiterIdle)
				}
			}
		}()
	}

	slog.Info("background runners started")
}

// GetEcho returns the underlying echo instance.
func (s *Server) GetEcho() *echo.Echo {
	return s.echoServer
}
