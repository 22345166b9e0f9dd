package service

import (
	"context"

	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/model"
	"github.com/deppfellow/flashcards/internal/repository"
	"github.com/deppfellow/flashcards/internal/validation"
)

// WordService runs word operations, one leased connection per call.
type WordService struct {
	pool  Pool
	words *repository.WordRepository
}

func NewWordService(pool Pool, words *repository.WordRepository) *WordService {
	return &WordService{pool: pool, words: words}
}

func (s *WordService) Create(ctx context.Context, payload validation.Payload) (*model.Word, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) (*model.Word, error) {
		return s.words.Create(ctx, conn, payload)
	})
}

func (s *WordService) List(ctx context.Context, sort repository.WordSort) ([]model.Word, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) ([]model.Word, error) {
		return s.words.FindAll(ctx, conn, sort)
	})
}

func (s *WordService) Get(ctx context.Context, id int64) (*model.Word, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) (*model.Word, error) {
		return s.words.FindByID(ctx, conn, id)
	})
}

func (s *WordService) Search(ctx context.Context, term string, sort repository.WordSort) ([]model.Word, error) {
	return withConn(ctx, s.pool, func(conn database.Conn) ([]model.Word, error) {
		return s.words.Search(ctx, conn, term, sort)
	})
}

// Replace and Patch run their existence check and update on the same lease.
func (s *WordService) Replace(ctx context.Context, id int64, payload validation.Payload) error {
	return withConnNoResult(ctx, s.pool, func(conn database.Conn) error {
		return s.words.Replace(ctx, conn, id, payload)
	})
}

func (s *WordService) Patch(ctx context.Context, id int64, payload validation.Payload) error {
	return withConnNoResult(ctx, s.pool, func(conn database.Conn) error {
		return s.words.Patch(ctx, conn, id, payload)
	})
}

func (s *WordService) Delete(ctx context.Context, id int64) error {
	return withConnNoResult(ctx, s.pool, func(conn database.Conn) error {
		return s.words.DeleteByID(ctx, conn, id)
	})
}

func (s *WordService) DeleteAll(ctx context.Context) error {
	return withConnNoResult(ctx, s.pool, func(conn database.Conn) error {
		return s.words.DeleteAll(ctx, conn)
	})
}
