package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/prodboard/internal/cli/formatter"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List and change order statuses",
	}
	cmd.AddCommand(newStatusListCmd(app), newStatusSetCmd(app))
	return cmd
}

func parseField(s string) (domain.StatusField, error) {
	f := domain.StatusField(s)
	if !domain.ValidStatusFields[f] {
		return "", fmt.Errorf("unknown status field %q (want order_status, payment_status or production_status)", s)
	}
	return f, nil
}

func newStatusListCmd(app *App) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the statuses selectable for a field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseField(field)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Connect(ctx); err != nil {
				return err
			}
			rows, err := app.Records.StatusOptions(ctx, f)
			if err != nil {
				return err
			}
			table := make([][]string, len(rows))
			for i, r := range rows {
				table[i] = []string{strconv.FormatInt(r.ID, 10), r.Name}
			}
			fmt.Fprint(app.Stdout, formatter.RenderTable([]string{"ID", "STATUS"}, table))
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", string(domain.FieldOrderStatus), "Status field: order_status, payment_status or production_status")
	return cmd
}

func newStatusSetCmd(app *App) *cobra.Command {
	var field string
	var statusID int64

	cmd := &cobra.Command{
		Use:   "set ORDER_ID",
		Short: "Set a status of an order",
		Long: "Set a status of an order. Without --status an interactive picker is shown;\n" +
			"picking a production status also records a production event.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			f, err := parseField(field)
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
			rows, err := app.Records.StatusOptions(ctx, f)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("status") {
				if !app.interactive() {
					return errors.New("--status is required when not running in a terminal")
				}
				statusID, err = pickStatus(ctx, order, f, rows)
				if err != nil {
					return err
				}
			}
			name, ok := statusName(rows, statusID)
			if !ok {
				return fmt.Errorf("unknown %s id %d", f.Label(), statusID)
			}

			if err := app.Statuses.UpdateStatus(ctx, order, f, statusID, name); err != nil {
				return errors.New(provider.Message(err))
			}
			fmt.Fprintln(app.Stdout, formatter.StyleGreen.Render(fmt.Sprintf("Order %s: %s set to %s", order.Name, f.Label(), name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", string(domain.FieldOrderStatus), "Status field: order_status, payment_status or production_status")
	cmd.Flags().Int64Var(&statusID, "status", 0, "Status id (see 'status list')")
	return cmd
}

func pickStatus(ctx context.Context, order domain.ScheduledOrder, field domain.StatusField, rows []domain.LookupRecord) (int64, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("no %s values defined", field.Label())
	}
	var value int64
	if id, ok := statusID(rows, currentStatus(order, field)); ok {
		value = id
	}
	if err := statusPickerForm(order, field, rows, &value).RunWithContext(ctx); err != nil {
		return 0, err
	}
	return value, nil
}

func statusName(rows []domain.LookupRecord, id int64) (string, bool) {
	for _, r := range rows {
		if r.ID == id {
			return r.Name, true
		}
	}
	return "", false
}

func statusID(rows []domain.LookupRecord, name string) (int64, bool) {
	for _, r := range rows {
		if r.Name == name {
			return r.ID, true
		}
	}
	return 0, false
}
