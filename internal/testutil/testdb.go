package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/prodboard/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewSeededDB is NewTestDB filled with the demo data set scheduled around
// today.
func NewSeededDB(t *testing.T, today time.Time) *sql.DB {
	t.Helper()
	database := NewTestDB(t)
	if _, err := db.SeedDemo(context.Background(), db.NewUnitOfWork(database), today); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	return database
}

// MustExec runs a statement and fails the test on error.
func MustExec(t *testing.T, database *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
