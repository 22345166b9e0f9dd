package router

import (
	"github.com/deppfellow/flashcards/internal/handler"
	"github.com/deppfellow/flashcards/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers endpoints that are not part of the
// flashcard API: health, metrics and docs.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	if obs := s.Config.Observability; obs == nil || obs.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	if s.Registry != nil {
		r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
	}

	r.StaticFS("/static", h.OpenAPI.Assets())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
