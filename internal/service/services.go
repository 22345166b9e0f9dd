package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/repository"
	"github.com/deppfellow/flashcards/internal/server"
)

// Pool hands out leased connections. *database.Database implements it.
type Pool interface {
	Acquire(ctx context.Context) (database.Conn, error)
}

type Services struct {
	Words  *WordService
	Scores *ScoreService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	if s.DB == nil {
		return nil, errors.New("services need a database pool")
	}

	return &Services{
		Words:  NewWordService(s.DB, repos.Words),
		Scores: NewScoreService(s.DB, repos.Scores),
	}, nil
}

// withConn leases a connection for the duration of fn and releases it on
// every exit path, including panics.
func withConn[T any](ctx context.Context, pool Pool, fn func(conn database.Conn) (T, error)) (T, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}

func withConnNoResult(ctx context.Context, pool Pool, fn func(conn database.Conn) error) error {
	_, err := withConn(ctx, pool, func(conn database.Conn) (struct{}, error) {
		return struct{}{}, fn(conn)
	})
	return err
}
