package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/prodboard/internal/cli/formatter"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/spf13/cobra"
)

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ORDER_ID DATE",
		Short: "Reschedule an order to another day",
		Long:  "Reschedule an order. DATE accepts DD.MM.YYYY or YYYY-MM-DD.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			target, err := domain.ParseDay(args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Connect(ctx); err != nil {
				return err
			}
			order, err := app.loadOrder(ctx, id)
			if err != nil {
				return err
			}
			source := ""
			if order.ScheduleDate != nil {
				source = order.ScheduleDate.Key()
			}

			state, err := app.Moves.MoveOrder(ctx, order, source, target)
			if err != nil {
				return errors.New(provider.Message(err))
			}
			if state == service.MoveIdle {
				fmt.Fprintln(app.Stdout, formatter.Dim(fmt.Sprintf("Order %s is already scheduled on %s", order.Name, target.Key())))
				return nil
			}
			fmt.Fprintln(app.Stdout, formatter.StyleGreen.Render(fmt.Sprintf("Order %s moved to %s", order.Name, target.Key())))
			return nil
		},
	}
}
