//go:build integration

package postgresql

import (
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestPersistenceBootstrapGateway_Integration(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set TEST_DATABASE_URL to run integration test")
	}

	logger := log.New()
	logger.SetOutput(io.Discard)
	migrationsPath := "migrations"
	gateway := NewPersistenceBootstrapGateway(databaseURL, "integration-target", migrationsPath, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.Nil(t, gateway.CheckReadiness(ctx))
	require.Nil(t, gateway.RunMigrations(ctx))
	require.Nil(t, gateway.RunMigrations(ctx), "second run must be a no-op")

	db, err := sql.Open("pgx", databaseURL)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"player_profiles", "marketplace_listings", "owned_asset_snapshots"} {
		var exists bool
		err := db.QueryRowContext(
			ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'app' AND table_name = $1)",
			table,
		).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, "table app.%s should exist", table)
	}
}
