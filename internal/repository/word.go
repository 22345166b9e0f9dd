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

const wordsTable = "words"

var wordColumns = []string{"id", "english_word", "finnish_word", "category_tags"}

// WordRepository stores flashcard words.
type WordRepository struct {
	sb squirrel.StatementBuilderType
}

// NewWordRepository creates a new word repository
func NewWordRepository() *WordRepository {
	return &WordRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

func wordNotFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("Word with ID: %d not found", id), true, nil)
}

// Create validates payload against the create schema and inserts a word.
func (r *WordRepository) Create(ctx context.Context, db database.Querier, payload validation.Payload) (*model.Word, error) {
	input, err := validation.Decode[model.CreateWordInput](validation.WordCreate, payload)
	if err != nil {
		return nil, err
	}

	query, args, err := r.sb.Insert(wordsTable).
		Columns("english_word", "finnish_word", "category_tags").
		Values(input.EnglishWord, input.FinnishWord, input.CategoryTags).
		Suffix("RETURNING id, english_word, finnish_word, category_tags").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert query: %w", err)
	}

	var word model.Word
	if err := pgxscan.Get(ctx, db, &word, query, args...); err != nil {
		return nil, fmt.Errorf("inserting word: %w", err)
	}
	return &word, nil
}

// FindAll lists every word. An empty table yields an empty slice.
func (r *WordRepository) FindAll(ctx context.Context, db database.Querier, sort WordSort) ([]model.Word, error) {
	query, args, err := r.sb.Select(wordColumns...).
		From(wordsTable).
		OrderBy(sort.orderBy()...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	words := []model.Word{}
	if err := pgxscan.Select(ctx, db, &words, query, args...); err != nil {
		return nil, fmt.Errorf("scanning words: %w", err)
	}
	return words, nil
}

// FindByID returns the word with id.
func (r *WordRepository) FindByID(ctx context.Context, db database.Querier, id int64) (*model.Word, error) {
	query, args, err := r.sb.Select(wordColumns...).
		From(wordsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	var word model.Word
	if err := pgxscan.Get(ctx, db, &word, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, wordNotFound(id)
		}
		return nil, fmt.Errorf("scanning word: %w", err)
	}
	return &word, nil
}

// Search returns words whose id, english_word, finnish_word or
// category_tags contain term, case-insensitively.
func (r *WordRepository) Search(ctx context.Context, db database.Querier, term string, sort WordSort) ([]model.Word, error) {
	pattern := containsPattern(term)

	query, args, err := r.sb.Select(wordColumns...).
		From(wordsTable).
		Where(squirrel.Or{
			squirrel.Expr("CAST(id AS TEXT) ILIKE ?", pattern),
			squirrel.ILike{"english_word": pattern},
			squirrel.ILike{"finnish_word": pattern},
			squirrel.ILike{"category_tags": pattern},
		}).
		OrderBy(sort.orderBy()...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building search query: %w", err)
	}

	words := []model.Word{}
	if err := pgxscan.Select(ctx, db, &words, query, args...); err != nil {
		return nil, fmt.Errorf("searching words: %w", err)
	}
	if len(words) == 0 {
		return nil, errs.NewNotFoundError(
			fmt.Sprintf("No matching records found for search term: %s", term), true, nil)
	}
	return words, nil
}

// DeleteByID removes the word with id in a single statement.
func (r *WordRepository) DeleteByID(ctx context.Context, db database.Querier, id int64) error {
	query, args, err := r.sb.Delete(wordsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting word: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wordNotFound(id)
	}
	return nil
}

// DeleteAll removes every word.
func (r *WordRepository) DeleteAll(ctx context.Context, db database.Querier) error {
	query, args, err := r.sb.Delete(wordsTable).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	if _, err := db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting words: %w", err)
	}
	return nil
}

// Replace overwrites all fields of word id.
//
// A missing id is reported before payload problems.
func (r *WordRepository) Replace(ctx context.Context, db database.Querier, id int64, payload validation.Payload) error {
	if err := r.ensureExists(ctx, db, id); err != nil {
		return err
	}

	input, err := validation.Decode[model.ReplaceWordInput](validation.WordReplace, payload)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Update(wordsTable).
		Set("english_word", input.EnglishWord).
		Set("finnish_word", input.FinnishWord).
		Set("category_tags", input.CategoryTags).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	return r.execUpdate(ctx, db, id, query, args)
}

// Patch updates only the fields present in payload, all in one statement.
//
// A missing id is reported before payload problems.
func (r *WordRepository) Patch(ctx context.Context, db database.Querier, id int64, payload validation.Payload) error {
	if err := r.ensureExists(ctx, db, id); err != nil {
		return err
	}

	input, err := validation.Decode[model.PatchWordInput](validation.WordPatch, payload)
	if err != nil {
		return err
	}

	builder := r.sb.Update(wordsTable)
	if input.EnglishWord != nil {
		builder = builder.Set("english_word", *input.EnglishWord)
	}
	if input.FinnishWord != nil {
		builder = builder.Set("finnish_word", *input.FinnishWord)
	}
	if input.CategoryTags != nil {
		builder = builder.Set("category_tags", *input.CategoryTags)
	}

	query, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	return r.execUpdate(ctx, db, id, query, args)
}

func (r *WordRepository) execUpdate(ctx context.Context, db database.Querier, id int64, query string, args []any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating word: %w", err)
	}
	// The row can vanish between the existence check and the update.
	if tag.RowsAffected() == 0 {
		return wordNotFound(id)
	}
	return nil
}

func (r *WordRepository) ensureExists(ctx context.Context, db database.Querier, id int64) error {
	query, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From(wordsTable).
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return fmt.Errorf("building exists query: %w", err)
	}

	var exists bool
	if err := db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return fmt.Errorf("checking word: %w", err)
	}
	if !exists {
		return wordNotFound(id)
	}
	return nil
}
