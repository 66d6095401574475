package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind_Postgres(t *testing.T) {
	got := Rebind(DriverPostgres, `SELECT a FROM t WHERE a = ? AND b IN (?, ?) LIMIT ? OFFSET ?`)
	assert.Equal(t, `SELECT a FROM t WHERE a = $1 AND b IN ($2, $3) LIMIT $4 OFFSET $5`, got)
}

func TestRebind_SQLiteUnchanged(t *testing.T) {
	q := `UPDATE t SET a = ? WHERE id = ?`
	assert.Equal(t, q, Rebind(DriverSQLite, q))
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d)

	d, err = ParseDriver("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, d)

	_, err = ParseDriver("mysql")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database), "re-running migrations must succeed")
}

func TestSeedDemo_PopulatesOnce(t *testing.T) {
	database, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	uow := NewUnitOfWork(database)
	today := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	sum, err := SeedDemo(ctx, uow, today)
	require.NoError(t, err)
	assert.Equal(t, 12, sum.Orders)
	assert.Positive(t, sum.Details)
	assert.Positive(t, sum.Events)
	assert.Positive(t, sum.Links)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM orders_view`).Scan(&n))
	assert.Equal(t, 12, n)

	_, err = SeedDemo(ctx, uow, today)
	assert.Error(t, err, "seeding a populated backend must fail")
}

func TestProductionEvents_UniquePerStage(t *testing.T) {
	database, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = SeedDemo(context.Background(), NewUnitOfWork(database), time.Now())
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO order_production_events (order_id, detail_id, production_status_id) VALUES (1, NULL, 3)`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO order_production_events (order_id, detail_id, production_status_id) VALUES (1, NULL, 3)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
