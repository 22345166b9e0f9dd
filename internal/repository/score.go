package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/deppfellow/flashcards/internal/model"
	"github.com/deppfellow/flashcards/internal/validation"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const scoresTable = "scores"

var scoreColumns = []string{"id", "score", "correct_words", "incorrect_words", "date"}

// ScoreRepository stores quiz results. Scores are never updated.
type ScoreRepository struct {
	sb squirrel.StatementBuilderType
}

// NewScoreRepository creates a new score repository
func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

func scoreNotFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("Score with ID: %d not found", id), true, nil)
}

// Create validates payload against the score schema and inserts a score.
func (r *ScoreRepository) Create(ctx context.Context, db database.Querier, payload validation.Payload) (*model.Score, error) {
	input, err := validation.Decode[model.CreateScoreInput](validation.ScoreCreate, payload)
	if err != nil {
		return nil, err
	}

	query, args, err := r.sb.Insert(scoresTable).
		Columns("score", "correct_words", "incorrect_words", "date").
		Values(input.Score, input.CorrectWords, input.IncorrectWords, input.Date).
		Suffix("RETURNING id, score, correct_words, incorrect_words, date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert query: %w", err)
	}

	var score model.Score
	if err := pgxscan.Get(ctx, db, &score, query, args...); err != nil {
		return nil, fmt.Errorf("inserting score: %w", err)
	}
	return &score, nil
}

// FindAll lists scores ordered by id, newest first unless order says
// otherwise. A non-empty term keeps only scores whose id, date or score
// contains it. An empty result is reported as not found.
func (r *ScoreRepository) FindAll(ctx context.Context, db database.Querier, term string, order SortOrder) ([]model.Score, error) {
	builder := r.sb.Select(scoreColumns...).
		From(scoresTable).
		OrderBy("id " + order.sql())

	if term != "" {
		pattern := containsPattern(term)
		builder = builder.Where(squirrel.Or{
			squirrel.Expr("CAST(id AS TEXT) ILIKE ?", pattern),
			squirrel.ILike{"date": pattern},
			squirrel.ILike{"score": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	scores := []model.Score{}
	if err := pgxscan.Select(ctx, db, &scores, query, args...); err != nil {
		return nil, fmt.Errorf("scanning scores: %w", err)
	}

	if len(scores) == 0 {
		message := "No scores found"
		if term != "" {
			message = fmt.Sprintf("No matching records found for search term: %s", term)
		}
		return nil, errs.NewNotFoundError(message, true, nil)
	}
	return scores, nil
}

// FindByID returns the score with id.
func (r *ScoreRepository) FindByID(ctx context.Context, db database.Querier, id int64) (*model.Score, error) {
	query, args, err := r.sb.Select(scoreColumns...).
		From(scoresTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	var score model.Score
	if err := pgxscan.Get(ctx, db, &score, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, scoreNotFound(id)
		}
		return nil, fmt.Errorf("scanning score: %w", err)
	}
	return &score, nil
}

// DeleteByID removes the score with id in a single statement.
func (r *ScoreRepository) DeleteByID(ctx context.Context, db database.Querier, id int64) error {
	query, args, err := r.sb.Delete(scoresTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scoreNotFound(id)
	}
	return nil
}

// DeleteAll removes every score.
func (r *ScoreRepository) DeleteAll(ctx context.Context, db database.Querier) error {
	query, args, err := r.sb.Delete(scoresTable).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	if _, err := db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting scores: %w", err)
	}
	return nil
}
