package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/cli/formatter"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var f boardFlags
	var width int
	var list bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the board once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Connect(ctx); err != nil {
				return err
			}
			feed := aggregator.NewFeed(app.Aggregator, nil)
			ctrl, err := app.newController(feed, f)
			if err != nil {
				return err
			}
			if width <= 0 {
				return fmt.Errorf("--width must be positive, got %d", width)
			}
			ctrl.Resize(float64(width*formatter.PixelsPerCell), width < narrowCells)
			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			v := ctrl.View()
			out := app.Stdout
			w := ctrl.Window()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Schedule %s – %s", w.Start.Key(), w.End.Key())))
			for _, warn := range v.Warnings {
				fmt.Fprintln(out, formatter.StyleYellow.Render("⚠ "+warn))
			}
			if list {
				var orders []domain.ScheduledOrder
				for _, col := range v.Columns {
					orders = append(orders, col.Orders...)
				}
				if len(orders) == 0 {
					fmt.Fprintln(out, formatter.Dim("No orders scheduled."))
					return nil
				}
				fmt.Fprint(out, formatter.RenderTable(formatter.OrderHeaders, formatter.OrderRows(orders)))
				return nil
			}
			grid := formatter.RenderGrid(v, formatter.GridOptions{
				Today:  ctrl.Today(),
				Issued: ctrl.IssuedStatus(),
			})
			fmt.Fprintln(out, strings.TrimRight(grid, "\n"))
			return nil
		},
	}

	f.register(cmd.Flags(), "Keyword filter")
	cmd.Flags().IntVar(&width, "width", 160, "Output width in terminal cells")
	cmd.Flags().BoolVar(&list, "list", false, "Print a table of orders instead of the grid")

	return cmd
}
