// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/store"
	"github.com/footprint-tools/routeshell/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	// every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrations.Run(db), "failed to run migrations")

	return db
}

// NewTestStore returns a journal backed by NewTestDB.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedInvocations records invocations one minute apart, starting at base,
// in slice order.
func SeedInvocations(t *testing.T, s *store.Store, base time.Time, invs ...domain.Invocation) {
	t.Helper()

	for i, inv := range invs {
		if inv.StartedAt.IsZero() {
			inv.StartedAt = base.Add(time.Duration(i) * time.Minute)
		}
		require.NoError(t, s.Record(inv), "failed to seed invocation: %+v", inv)
	}
}
