package handler

import (
	"github.com/deppfellow/flashcards/internal/model"
	"github.com/deppfellow/flashcards/internal/server"
	"github.com/deppfellow/flashcards/internal/service"
	"github.com/labstack/echo/v4"
)

type ScoreHandler struct {
	Handler
	scores *service.ScoreService
}

func NewScoreHandler(s *server.Server, scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		Handler: NewHandler(s),
		scores:  scores,
	}
}

func (h *ScoreHandler) CreateScore(c echo.Context, req *PayloadRequest) (*model.Score, error) {
	return h.scores.Create(c.Request().Context(), req.Body)
}

func (h *ScoreHandler) ListScores(c echo.Context, req *ListScoresRequest) ([]model.Score, error) {
	return h.scores.List(c.Request().Context(), req.SearchTerm, req.order())
}

func (h *ScoreHandler) GetScore(c echo.Context, req *IDRequest) (*model.Score, error) {
	return h.scores.Get(c.Request().Context(), req.ID)
}

func (h *ScoreHandler) DeleteScore(c echo.Context, req *IDRequest) error {
	return h.scores.Delete(c.Request().Context(), req.ID)
}

func (h *ScoreHandler) DeleteAllScores(c echo.Context, _ *NoRequest) error {
	return h.scores.DeleteAll(c.Request().Context())
}
