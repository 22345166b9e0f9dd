//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseLifecycle(t *testing.T) {
	ctx := context.Background()
	cfg := testutil.StartPostgres(ctx, t, 2)
	logger := zerolog.Nop()

	t.Run("Should apply the embedded schema twice without error", func(t *testing.T) {
		require.NoError(t, database.Migrate(ctx, &logger, cfg))
		require.NoError(t, database.Migrate(ctx, &logger, cfg))
	})

	t.Run("Should report exhaustion once every connection is leased", func(t *testing.T) {
		db, err := database.New(ctx, cfg, &logger, nil)
		require.NoError(t, err)
		defer db.Close()

		first, err := db.Acquire(ctx)
		require.NoError(t, err)
		second, err := db.Acquire(ctx)
		require.NoError(t, err)

		_, err = db.Acquire(ctx)
		assert.ErrorIs(t, err, database.ErrPoolExhausted)

		first.Release()
		first.Release()

		third, err := db.Acquire(ctx)
		require.NoError(t, err)
		third.Release()
		second.Release()
	})

	t.Run("Should drain leased connections on Close", func(t *testing.T) {
		db, err := database.New(ctx, cfg, &logger, nil)
		require.NoError(t, err)

		conn, err := db.Acquire(ctx)
		require.NoError(t, err)

		closed := make(chan struct{})
		go func() {
			_ = db.Close()
			close(closed)
		}()

		// Close must refuse new work while it waits for the lease.
		require.Eventually(t, func() bool {
			extra, err := db.Acquire(ctx)
			if err != nil {
				return true
			}
			extra.Release()
			return false
		}, time.Second, 10*time.Millisecond)

		select {
		case <-closed:
			t.Fatal("Close returned while a connection was still leased")
		case <-time.After(100 * time.Millisecond):
		}

		var one int
		require.NoError(t, conn.QueryRow(ctx, "SELECT 1").Scan(&one))
		conn.Release()

		select {
		case <-closed:
		case <-time.After(5 * time.Second):
			t.Fatal("Close did not return after the lease was released")
		}

		_, err = db.Acquire(ctx)
		assert.ErrorIs(t, err, database.ErrPoolClosed)
	})
}
