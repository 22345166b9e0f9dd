//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/deppfellow/flashcards/internal/repository"
	"github.com/deppfellow/flashcards/internal/testutil"
	"github.com/deppfellow/flashcards/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDatabase(ctx context.Context, t *testing.T) *database.Database {
	t.Helper()

	cfg := testutil.StartPostgres(ctx, t, 4)
	logger := zerolog.Nop()

	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	db, err := database.New(ctx, cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWordRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	db := setupDatabase(ctx, t)
	repos := repository.NewRepositories()

	conn, err := db.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	t.Run("Should run the create, search and delete cycle", func(t *testing.T) {
		require.NoError(t, repos.Words.DeleteAll(ctx, conn))

		created, err := repos.Words.Create(ctx, conn, validation.Payload{
			"english_word":  "cat",
			"finnish_word":  "kissa",
			"category_tags": "animals",
		})
		require.NoError(t, err)
		assert.Positive(t, created.ID)

		words, err := repos.Words.FindAll(ctx, conn, repository.WordSort{})
		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, "kissa", words[0].FinnishWord)

		found, err := repos.Words.Search(ctx, conn, "ISS", repository.WordSort{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, created.ID, found[0].ID)

		require.NoError(t, repos.Words.DeleteByID(ctx, conn, created.ID))

		_, err = repos.Words.FindByID(ctx, conn, created.ID)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("Should treat LIKE wildcards in the search term literally", func(t *testing.T) {
		require.NoError(t, repos.Words.DeleteAll(ctx, conn))
		_, err := repos.Words.Create(ctx, conn, validation.Payload{
			"english_word": "dog", "finnish_word": "koira", "category_tags": "",
		})
		require.NoError(t, err)

		_, err = repos.Words.Search(ctx, conn, "%", repository.WordSort{})
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("Should patch only the supplied fields", func(t *testing.T) {
		require.NoError(t, repos.Words.DeleteAll(ctx, conn))
		created, err := repos.Words.Create(ctx, conn, validation.Payload{
			"english_word": "house", "finnish_word": "talo", "category_tags": "home",
		})
		require.NoError(t, err)

		require.NoError(t, repos.Words.Patch(ctx, conn, created.ID, validation.Payload{"finnish_word": "koti"}))

		word, err := repos.Words.FindByID(ctx, conn, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "house", word.EnglishWord)
		assert.Equal(t, "koti", word.FinnishWord)
		assert.Equal(t, "home", word.CategoryTags)
	})

	t.Run("Should replace every field and sort descending", func(t *testing.T) {
		require.NoError(t, repos.Words.DeleteAll(ctx, conn))
		first, err := repos.Words.Create(ctx, conn, validation.Payload{
			"english_word": "apple", "finnish_word": "omena", "category_tags": "food",
		})
		require.NoError(t, err)
		_, err = repos.Words.Create(ctx, conn, validation.Payload{
			"english_word": "bread", "finnish_word": "leipa", "category_tags": "food",
		})
		require.NoError(t, err)

		require.NoError(t, repos.Words.Replace(ctx, conn, first.ID, validation.Payload{
			"english_word": "zebra", "finnish_word": "seepra", "category_tags": "animals",
		}))

		words, err := repos.Words.FindAll(ctx, conn, repository.WordSort{
			Field: repository.SortByEnglishWord,
			Order: repository.Descending,
		})
		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "zebra", words[0].EnglishWord)
		assert.Equal(t, "bread", words[1].EnglishWord)
	})

	t.Run("Should report missing ids on delete and update", func(t *testing.T) {
		err := repos.Words.DeleteByID(ctx, conn, 999999)
		assert.True(t, errs.IsNotFound(err))

		err = repos.Words.Patch(ctx, conn, 999999, validation.Payload{"english_word": "x"})
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestScoreRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	db := setupDatabase(ctx, t)
	repos := repository.NewRepositories()

	conn, err := db.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	require.NoError(t, repos.Scores.DeleteAll(ctx, conn))

	t.Run("Should report an empty table as not found", func(t *testing.T) {
		_, err := repos.Scores.FindAll(ctx, conn, "", repository.Descending)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("Should store and filter scores", func(t *testing.T) {
		first, err := repos.Scores.Create(ctx, conn, validation.Payload{
			"score":           "8/10",
			"correct_words":   "cat,dog",
			"incorrect_words": "house",
			"date":            "2024-03-01",
		})
		require.NoError(t, err)
		second, err := repos.Scores.Create(ctx, conn, validation.Payload{
			"score": "3/10", "correct_words": "", "incorrect_words": "",
		})
		require.NoError(t, err)
		assert.Nil(t, second.Date)

		all, err := repos.Scores.FindAll(ctx, conn, "", repository.Descending)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID)

		filtered, err := repos.Scores.FindAll(ctx, conn, "2024-03", repository.Ascending)
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, first.ID, filtered[0].ID)

		require.NoError(t, repos.Scores.DeleteByID(ctx, conn, first.ID))
		_, err = repos.Scores.FindByID(ctx, conn, first.ID)
		assert.True(t, errs.IsNotFound(err))
	})
}
