//go:build integration

// Package testutil starts throwaway PostgreSQL servers for integration tests.
package testutil

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/deppfellow/flashcards/internal/config"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartPostgres runs a PostgreSQL container and returns a config pointing
// at it. The container is terminated when the test finishes.
func StartPostgres(ctx context.Context, t *testing.T, maxConns int) *config.Config {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("flashcards"),
		postgres.WithUsername("flashcards"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pgContainer.Terminate(terminateCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	portNumber, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Host:           host,
			Port:           portNumber,
			User:           "flashcards",
			Password:       "secret",
			Name:           "flashcards",
			SSLMode:        "disable",
			MaxOpenConns:   maxConns,
			AcquireTimeout: 300 * time.Millisecond,
			PingTimeout:    5 * time.Second,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}
