package handler

import (
	"github.com/deppfellow/flashcards/internal/server"
	"github.com/deppfellow/flashcards/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one object.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Words   *WordHandler
	Scores  *ScoreHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Words:   NewWordHandler(s, services.Words),
		Scores:  NewScoreHandler(s, services.Scores),
	}
}
