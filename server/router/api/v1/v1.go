package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/watayuraType-C/playground-ramen-concierge/internal/profile"
	"github.com/watayuraType-C/playground-ramen-concierge/server/internal/observability"
	"github.com/watayuraType-C/playground-ramen-concierge/server/service/ramen"
)

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type APIV1Service struct {
	Profile      *profile.Profile
	Store        Pinger
	RamenService *ramen.Service
	Metrics      *observability.Metrics
}

func NewAPIV1Service(profile *profile.Profile, store Pinger, ramenService *ramen.Service, metrics *observability.Metrics) *APIV1Service {
	return &APIV1Service{
		Profile:      profile,
		Store:        store,
		RamenService: ramenService,
		Metrics:      metrics,
	}
}

// RegisterRoutes registers the JSON API on the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	echoServer.GET("/healthz", s.Healthz)

	api := echoServer.Group("/api")
	api.POST("/parse-ramen", s.ParseRamen)
	api.POST("/register-ramen", s.RegisterRamen)
	api.POST("/search-ramen", s.SearchRamen)
	api.GET("/manage-ramen", s.ListRamen)
	api.PUT("/manage-ramen", s.UpdateRamen)
	api.DELETE("/manage-ramen", s.DeleteRamen)
	api.GET("/metrics", s.GetMetrics)
}

// Healthz answers 200 when the store is reachable and 503 otherwise.
func (s *APIV1Service) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		observability.Logger(ctx).Warn("health check failed", "error", err.Error())
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": s.Profile.Version})
}

// GetMetrics returns request counters per operation.
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Metrics.Snapshot())
}
