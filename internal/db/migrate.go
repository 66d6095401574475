package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates the local SQLite backend schema. Statements are idempotent
// and re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_statuses (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payment_statuses (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS production_statuses (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		code TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS milling_types (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS materials (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id                     INTEGER PRIMARY KEY AUTOINCREMENT,
		name                   TEXT NOT NULL,
		schedule_date          TEXT,
		area                   REAL,
		client_id              INTEGER REFERENCES clients(id) ON DELETE SET NULL,
		manager_id             INTEGER REFERENCES employees(id) ON DELETE SET NULL,
		order_status_id        INTEGER REFERENCES order_statuses(id),
		payment_status_id      INTEGER REFERENCES payment_statuses(id),
		production_status_id   INTEGER REFERENCES production_statuses(id),
		production_status_auto INTEGER NOT NULL DEFAULT 1,
		comment                TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_schedule_date ON orders(schedule_date, id)`,

	`CREATE TABLE IF NOT EXISTS order_details (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id             INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		milling_type_id      INTEGER REFERENCES milling_types(id),
		material_id          INTEGER REFERENCES materials(id),
		production_status_id INTEGER REFERENCES production_statuses(id),
		area                 REAL,
		quantity             INTEGER NOT NULL DEFAULT 1,
		note                 TEXT NOT NULL DEFAULT '',
		deleted              INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_details_order ON order_details(order_id)`,

	`CREATE TABLE IF NOT EXISTS order_production_events (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id             INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		detail_id            INTEGER REFERENCES order_details(id) ON DELETE CASCADE,
		production_status_id INTEGER NOT NULL REFERENCES production_statuses(id),
		payload              TEXT NOT NULL DEFAULT '{}',
		created_at           TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_production_events_unique
		ON order_production_events(order_id, COALESCE(detail_id, 0), production_status_id)`,

	`CREATE TABLE IF NOT EXISTS secondary_orders (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_links (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id           INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		secondary_order_id INTEGER NOT NULL REFERENCES secondary_orders(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_links_order ON order_links(order_id)`,

	`CREATE VIEW IF NOT EXISTS orders_view AS
		SELECT o.id, o.name, o.schedule_date, o.area,
		       o.client_id, c.name AS client_name, o.manager_id,
		       o.order_status_id, os.name AS order_status_name,
		       o.payment_status_id, ps.name AS payment_status_name,
		       o.production_status_id, prs.name AS production_status_name,
		       o.production_status_auto, o.comment
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id
		LEFT JOIN order_statuses os ON os.id = o.order_status_id
		LEFT JOIN payment_statuses ps ON ps.id = o.payment_status_id
		LEFT JOIN production_statuses prs ON prs.id = o.production_status_id`,

	`CREATE VIEW IF NOT EXISTS order_links_view AS
		SELECT l.id, l.order_id, l.secondary_order_id, s.name AS secondary_order_name
		FROM order_links l
		JOIN secondary_orders s ON s.id = l.secondary_order_id`,
}
