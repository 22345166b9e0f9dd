package service

import (
	"context"

	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/model"
	"github.com/deppfellow/flashcards/internal/repository"
	"github.com/deppfellow/flashcards/internal/validation"
)

// ScoreService runs score operations, one leased connection per call.
type ScoreService struct {
	pool   Pool
	scores *repository.ScoreRepository
}

func NewScoreService(pool Pool, scores *repository.ScoreRepository) *ScoreService {
	return &ScoreService{pool: pool, scores: scores}
}

func (s *ScoreService) Create(ctx context.Context, payload validation.Payload) (*model.Score, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) (*model.Score, error) {
		return s.scores.Create(ctx, conn, payload)
	})
}

// List returns scores matching term, or all scores when term is empty.
func (s *ScoreService) List(ctx context.Context, term string, order repository.SortOrder) ([]model.Score, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) ([]model.Score, error) {
		return s.scores.FindAll(ctx, conn, term, order)
	})
}

func (s *ScoreService) Get(ctx context.Context, id int64) (*model.Score, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) (*model.Score, error) {
		return s.scores.FindByID(ctx, conn, id)
	})
}

func (s *ScoreService) Delete(ctx context.Context, id int64) error {
	return withConnNoResult(ctx, s.pool, func(conn database.Conn) error {
		return s.scores.DeleteByID(ctx, conn, id)
	})
}

func (s *ScoreService) DeleteAll(ctx context.Context) error {
	return withConnNoResult(ctx, s.pool, func(conn database.Conn) error {
		return s.scores.DeleteAll(ctx, conn)
	})
}
