package service

import (
	"context"
	"testing"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/AndreaRuggieri/retbet/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// One in-memory database per test; a second pool connection would see an
	// empty schema.
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

// seedSeason creates country, competition, season and two teams through the
// reference service and returns the season with the team pair.
func seedSeason(t *testing.T, refs *ReferenceService) (*football.Season, *football.Team, *football.Team) {
	t.Helper()
	ctx := context.Background()

	country, err := refs.ResolveCountry(ctx, "Italy", "ITA")
	require.NoError(t, err)

	comp, err := refs.EnsureCompetition(ctx, "Serie A", country.ID, 1)
	require.NoError(t, err)

	season, err := refs.EnsureSeason(ctx, comp.ID, "2025-2026")
	require.NoError(t, err)

	home, err := refs.EnsureTeam(ctx, "Milan", nil)
	require.NoError(t, err)
	away, err := refs.EnsureTeam(ctx, "Inter", nil)
	require.NoError(t, err)

	return season, home, away
}

func newReferenceService(db *sqlx.DB) *ReferenceService {
	return NewReferenceService(db, store.NewReferenceStore(db))
}
