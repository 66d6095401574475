package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/prodboard/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP with a websocket invalidation feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				app.Config.Listen = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (default from config)")
	return cmd
}

// serve runs the API until ctx is cancelled, then shuts the server down.
func serve(ctx context.Context, app *App) error {
	if err := app.Connect(ctx); err != nil {
		return err
	}
	logger := app.Logger

	hub := api.NewHub(logger)
	stopRelay := hub.Relay(app.Bus)
	defer stopRelay()

	if spec := app.Config.RefreshSpec; spec != "" {
		sched, err := api.NewRefreshScheduler(spec, app.Bus, logger)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	deps := api.Deps{
		Fetcher:      app.Fetcher,
		Aggregator:   app.Aggregator,
		Moves:        app.Moves,
		Statuses:     app.Statuses,
		Hub:          hub,
		Clock:        app.now,
		DaysBack:     app.Config.DaysBack,
		DaysForward:  app.Config.DaysForward,
		IssuedStatus: app.Config.IssuedStatus,
	}
	if app.DB != nil {
		deps.Pinger = app.DB
	}
	server := &http.Server{
		Addr:         app.Config.Listen,
		Handler:      api.NewRouter(deps, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sctx)
	})
	return g.Wait()
}
