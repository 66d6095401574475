package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/prodboard/internal/cli/formatter"
	"github.com/alexanderramin/prodboard/internal/db"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo reference data and orders around today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Driver != string(db.DriverSQLite) {
				return errors.New("seed only supports the sqlite backend")
			}
			ctx := cmd.Context()
			if err := app.Connect(ctx); err != nil {
				return err
			}
			if app.DB == nil {
				return errors.New("seed needs a database connection")
			}
			sum, err := db.SeedDemo(ctx, db.NewUnitOfWork(app.DB), app.now())
			if err != nil {
				return fmt.Errorf("seeding demo data: %w", err)
			}
			fmt.Fprintln(app.Stdout, formatter.StyleGreen.Render(fmt.Sprintf(
				"Seeded %d orders, %d details, %d production events, %d links", sum.Orders, sum.Details, sum.Events, sum.Links)))
			return nil
		},
	}
}
