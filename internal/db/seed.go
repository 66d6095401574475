package db

import (
	"context"
	"fmt"
	"time"
)

// SeedSummary reports what SeedDemo inserted.
type SeedSummary struct {
	Orders  int
	Details int
	Events  int
	Links   int
}

var demoLookups = []struct {
	table string
	col   string
	names []string
}{
	{"clients", "name", []string{"Mebel-Profi", "Kuhni Sever", "Interior Lab", "Studio Dvor"}},
	{"employees", "full_name", []string{"Anna Petrova", "Igor Smirnov"}},
	{"order_statuses", "name", []string{"New", "In work", "Ready", "Issued"}},
	{"payment_statuses", "name", []string{"Unpaid", "Prepaid", "Paid"}},
	{"milling_types", "name", []string{"Classic", "Modern", "Flat"}},
	{"materials", "name", []string{"MDF 16", "MDF 19", "MDF 22"}},
	{"secondary_orders", "name", []string{"Doweling D-101", "Fittings F-202", "Doweling D-103"}},
}

var demoStages = []struct {
	name string
	code string
}{
	{"Film purchase", "film_purchase"},
	{"Cutting", "cutting"},
	{"Grinding", "grinding"},
	{"Filming", "filming"},
	{"Packaging", "packaging"},
}

// SeedDemo fills an empty SQLite backend with reference data and a spread of
// orders scheduled around today. It runs in one transaction.
func SeedDemo(ctx context.Context, uow UnitOfWork, today time.Time) (SeedSummary, error) {
	var sum SeedSummary
	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&existing); err != nil {
			return fmt.Errorf("counting orders: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("backend already holds %d orders", existing)
		}

		for _, l := range demoLookups {
			for _, n := range l.names {
				q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?)`, l.table, l.col)
				if _, err := tx.ExecContext(ctx, q, n); err != nil {
					return fmt.Errorf("seeding %s: %w", l.table, err)
				}
			}
		}
		for _, s := range demoStages {
			if _, err := tx.ExecContext(ctx, `INSERT INTO production_statuses (name, code) VALUES (?, ?)`, s.name, s.code); err != nil {
				return fmt.Errorf("seeding production_statuses: %w", err)
			}
		}

		for i := 0; i < 12; i++ {
			day := today.AddDate(0, 0, i-4).Format("2006-01-02")
			orderStatus := 2
			if i < 3 {
				orderStatus = 4
			}
			res, err := tx.ExecContext(ctx, `INSERT INTO orders
				(name, schedule_date, area, client_id, manager_id, order_status_id, payment_status_id, production_status_id, production_status_auto)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				fmt.Sprintf("F-%03d", 100+i), day, 1.25+float64(i%4)*0.75,
				1+i%4, 1+i%2, orderStatus, 1+i%3, nil, 1)
			if err != nil {
				return fmt.Errorf("seeding orders: %w", err)
			}
			orderID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("reading order id: %w", err)
			}
			sum.Orders++

			for d := 0; d < 1+i%3; d++ {
				if _, err := tx.ExecContext(ctx, `INSERT INTO order_details
					(order_id, milling_type_id, material_id, production_status_id, area, quantity)
					VALUES (?, ?, ?, ?, ?, ?)`,
					orderID, 1+d%3, 1+(i+d)%3, 1+(i+d)%5, 0.4+float64(d)*0.2, 2+d); err != nil {
					return fmt.Errorf("seeding order_details: %w", err)
				}
				sum.Details++
			}

			for st := 1; st <= i%6 && st <= len(demoStages); st++ {
				if _, err := tx.ExecContext(ctx, `INSERT INTO order_production_events
					(order_id, detail_id, production_status_id, payload) VALUES (?, NULL, ?, '{}')`,
					orderID, st); err != nil {
					return fmt.Errorf("seeding order_production_events: %w", err)
				}
				sum.Events++
			}

			if i%4 == 1 {
				if _, err := tx.ExecContext(ctx, `INSERT INTO order_links (order_id, secondary_order_id) VALUES (?, ?)`,
					orderID, 1+i%3); err != nil {
					return fmt.Errorf("seeding order_links: %w", err)
				}
				sum.Links++
			}
		}
		return nil
	})
	return sum, err
}
