package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/board"
	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/alexanderramin/prodboard/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var f boardFlags

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive scheduling board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardWith(cmd.Context(), app, f)
		},
	}

	f.register(cmd.Flags(), "Initial keyword filter")

	return cmd
}

func runBoard(ctx context.Context, app *App) error {
	return runBoardWith(ctx, app, boardFlags{})
}

func runBoardWith(ctx context.Context, app *App, f boardFlags) error {
	if err := app.Connect(ctx); err != nil {
		return err
	}
	feed := aggregator.NewFeed(app.Aggregator, app.Bus)
	defer feed.Close()

	ctrl, err := app.newController(feed, f)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newBoardModel(ctx, app, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	feed.OnInvalidate(func(resource string) {
		p.Send(invalidatedMsg{resource: resource})
	})
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}

// newController builds a board controller from the configuration and the
// per-command overrides.
func (a *App) newController(feed *aggregator.Feed, f boardFlags) (*board.Controller, error) {
	cfg := a.Config
	mode := domain.ViewMode(cfg.ViewMode)
	if f.mode.mode != "" {
		mode = f.mode.mode
	}

	nav := calendar.NewNavigator(cfg.DaysBack, cfg.DaysForward, a.now)
	if !f.pivot.day.IsZero() {
		nav.SetPivot(f.pivot.day)
	}

	ctrl := board.NewController(feed, nav, a.Moves, a.Statuses, board.Options{
		IssuedStatus: cfg.IssuedStatus,
		Mode:         mode,
		Scale:        cfg.CardScale,
	})
	ctrl.SetQuery(f.query)
	return ctrl, nil
}
