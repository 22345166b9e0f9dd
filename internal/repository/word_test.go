package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/deppfellow/flashcards/internal/sqlerr"
	"github.com/deppfellow/flashcards/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConn(t *testing.T) pgxmock.PgxConnIface {
	t.Helper()
	mock, err := pgxmock.NewConn()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mock.Close(context.Background()) })
	return mock
}

func wordRows(mock pgxmock.PgxConnIface) *pgxmock.Rows {
	return mock.NewRows([]string{"id", "english_word", "finnish_word", "category_tags"})
}

const existsWordQuery = `SELECT EXISTS \( SELECT 1 FROM words WHERE id = \$1 \)`

func TestWordRepository_Create(t *testing.T) {
	t.Run("Should insert a valid word and return it", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(`INSERT INTO words \(english_word,finnish_word,category_tags\) VALUES \(\$1,\$2,\$3\) RETURNING id, english_word, finnish_word, category_tags`).
			WithArgs("cat", "kissa", "animals").
			WillReturnRows(wordRows(mock).AddRow(int64(1), "cat", "kissa", "animals"))

		word, err := repo.Create(context.Background(), mock, validation.Payload{
			"english_word":  "cat",
			"finnish_word":  "kissa",
			"category_tags": "animals",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), word.ID)
		assert.Equal(t, "kissa", word.FinnishWord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should not touch the store when validation fails", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()

		word, err := repo.Create(context.Background(), mock, validation.Payload{"finnish_word": "kissa"})

		assert.Nil(t, word)
		assert.True(t, errs.IsValidationFailed(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should wrap backend failures", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery("INSERT INTO words").WillReturnError(errors.New("connection reset by peer"))

		_, err := repo.Create(context.Background(), mock, validation.Payload{
			"english_word": "cat", "finnish_word": "kissa", "category_tags": "",
		})

		require.Error(t, err)
		assert.False(t, errs.IsNotFound(err))
		var httpErr *errs.HTTPError
		require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})
}

func TestWordRepository_FindAll(t *testing.T) {
	t.Run("Should sort by english word ascending by default", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(`^SELECT id, english_word, finnish_word, category_tags FROM words ORDER BY english_word ASC, id ASC$`).
			WillReturnRows(wordRows(mock).
				AddRow(int64(2), "cat", "kissa", "animals").
				AddRow(int64(1), "dog", "koira", "animals"))

		words, err := repo.FindAll(context.Background(), mock, ParseWordSort("", ""))

		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "cat", words[0].EnglishWord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should honour aliases and case-insensitive order", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(`ORDER BY finnish_word DESC, id ASC$`).
			WillReturnRows(wordRows(mock))

		_, err := repo.FindAll(context.Background(), mock, ParseWordSort("fin", "DESC"))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should never interpolate unknown sort tokens", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(`ORDER BY english_word ASC, id ASC$`).
			WillReturnRows(wordRows(mock))

		_, err := repo.FindAll(context.Background(), mock, ParseWordSort("id; DROP TABLE words", "asc; --"))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should return an empty list for an empty table", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery("FROM words").WillReturnRows(wordRows(mock))

		words, err := repo.FindAll(context.Background(), mock, ParseWordSort("id", "asc"))

		require.NoError(t, err)
		assert.NotNil(t, words)
		assert.Empty(t, words)
	})
}

func TestWordRepository_FindByID(t *testing.T) {
	t.Run("Should return the matching word", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(`SELECT (.+) FROM words WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(wordRows(mock).AddRow(int64(7), "bird", "lintu", ""))

		word, err := repo.FindByID(context.Background(), mock, 7)

		require.NoError(t, err)
		assert.Equal(t, "lintu", word.FinnishWord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report a missing word by id", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(`SELECT (.+) FROM words WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnError(pgx.ErrNoRows)

		word, err := repo.FindByID(context.Background(), mock, 7)

		assert.Nil(t, word)
		assert.True(t, errs.IsNotFound(err))
		assert.EqualError(t, err, "Word with ID: 7 not found")
	})
}

func TestWordRepository_Search(t *testing.T) {
	const searchQuery = `SELECT (.+) FROM words WHERE \(CAST\(id AS TEXT\) ILIKE \$1 OR english_word ILIKE \$2 OR finnish_word ILIKE \$3 OR category_tags ILIKE \$4\) ORDER BY english_word ASC, id ASC`

	t.Run("Should bind the term as a contains pattern", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(searchQuery).
			WithArgs("%iss%", "%iss%", "%iss%", "%iss%").
			WillReturnRows(wordRows(mock).AddRow(int64(1), "cat", "kissa", "animals"))

		words, err := repo.Search(context.Background(), mock, "iss", ParseWordSort("", ""))

		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, "cat", words[0].EnglishWord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should match wildcard characters literally", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		pattern := `%50\%\_off%`
		mock.ExpectQuery(searchQuery).
			WithArgs(pattern, pattern, pattern, pattern).
			WillReturnRows(wordRows(mock).AddRow(int64(3), "50%_off", "ale", ""))

		_, err := repo.Search(context.Background(), mock, "50%_off", ParseWordSort("", ""))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report an empty result as not found", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(searchQuery).WillReturnRows(wordRows(mock))

		words, err := repo.Search(context.Background(), mock, "zebra", ParseWordSort("", ""))

		assert.Nil(t, words)
		assert.True(t, errs.IsNotFound(err))
		assert.EqualError(t, err, "No matching records found for search term: zebra")
	})
}

func TestWordRepository_Delete(t *testing.T) {
	t.Run("Should delete an existing word in one statement", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectExec(`^DELETE FROM words WHERE id = \$1$`).
			WithArgs(int64(4)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.DeleteByID(context.Background(), mock, 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report a missing word", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectExec(`DELETE FROM words WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.DeleteByID(context.Background(), mock, 9)

		assert.True(t, errs.IsNotFound(err))
		assert.EqualError(t, err, "Word with ID: 9 not found")
	})

	t.Run("Should delete every word", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectExec(`^DELETE FROM words$`).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, repo.DeleteAll(context.Background(), mock))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWordRepository_Replace(t *testing.T) {
	t.Run("Should overwrite all fields in one statement", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(`^UPDATE words SET english_word = \$1, finnish_word = \$2, category_tags = \$3 WHERE id = \$4$`).
			WithArgs("dog", "koira", "pets", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Replace(context.Background(), mock, 4, validation.Payload{
			"id":            float64(99),
			"english_word":  "dog",
			"finnish_word":  "koira",
			"category_tags": "pets",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report a missing id before an invalid payload", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Replace(context.Background(), mock, 4, validation.Payload{"nope": true})

		assert.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should reject an invalid payload for an existing word", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Replace(context.Background(), mock, 4, validation.Payload{"english_word": "dog"})

		assert.True(t, errs.IsValidationFailed(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report a word deleted between check and update", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("UPDATE words").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Replace(context.Background(), mock, 4, validation.Payload{
			"english_word": "dog", "finnish_word": "koira", "category_tags": "",
		})

		assert.True(t, errs.IsNotFound(err))
	})
}

func TestWordRepository_Patch(t *testing.T) {
	t.Run("Should set only the present field", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(`^UPDATE words SET category_tags = \$1 WHERE id = \$2$`).
			WithArgs("pets", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Patch(context.Background(), mock, 4, validation.Payload{"category_tags": "pets"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should apply several fields in a single statement", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(`^UPDATE words SET english_word = \$1, finnish_word = \$2 WHERE id = \$3$`).
			WithArgs("horse", "hevonen", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Patch(context.Background(), mock, 4, validation.Payload{
			"finnish_word": "hevonen",
			"english_word": "horse",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should reject an empty patch for an existing word", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(4)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Patch(context.Background(), mock, 4, validation.Payload{})

		assert.True(t, errs.IsValidationFailed(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report a missing word", func(t *testing.T) {
		mock := newMockConn(t)
		repo := NewWordRepository()
		mock.ExpectQuery(existsWordQuery).
			WithArgs(int64(12)).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Patch(context.Background(), mock, 12, validation.Payload{"english_word": "horse"})

		assert.EqualError(t, err, "Word with ID: 12 not found")
	})
}
