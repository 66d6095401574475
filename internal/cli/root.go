// Package cli implements the prodboard command line: the interactive board,
// one-shot schedule printing, order mutations, the HTTP server and seeding.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/config"
	"github.com/alexanderramin/prodboard/internal/db"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/repository"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds the configuration and the wired backend shared by all commands.
// The backend fields are filled by Connect unless already set.
type App struct {
	Config        config.Config
	Logger        *slog.Logger
	Stdout        io.Writer
	Stderr        io.Writer
	IsInteractive func() bool
	Clock         func() time.Time

	DB         *sql.DB
	Provider   provider.DataProvider
	Bus        *provider.Bus
	Fetcher    *provider.CachingFetcher
	Aggregator *aggregator.Aggregator
	Records    *repository.Records
	Inbox      *service.Inbox
	Moves      service.MoveService
	Statuses   service.StatusService

	closers []func() error
}

type rootFlags struct {
	configPath  string
	dsn         string
	driver      string
	daysBack    int
	daysForward int
	issued      string
	logLevel    string
}

// NewRootCmd creates the top-level "prodboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:           "prodboard",
		Short:         "Production scheduling board for furniture-facade orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure(cmd, f)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runBoard(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file (default $PRODBOARD_CONFIG or the user config dir)")
	pf.StringVar(&f.dsn, "db", "", "Database file (sqlite) or connection string (postgres)")
	pf.StringVar(&f.driver, "driver", "", "Database driver: sqlite or postgres")
	pf.IntVar(&f.daysBack, "days-back", 0, "Days shown before the pivot")
	pf.IntVar(&f.daysForward, "days-forward", 0, "Days shown after the pivot")
	pf.StringVar(&f.issued, "issued-status", "", "Order status name that counts as issued")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newBoardCmd(app),
		newScheduleCmd(app),
		newMoveCmd(app),
		newStatusCmd(app),
		newServeCmd(app),
		newSeedCmd(app),
	)
	return root
}

func (a *App) configure(cmd *cobra.Command, f rootFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DSN = f.dsn
	}
	if flags.Changed("driver") {
		cfg.Driver = f.driver
	}
	if flags.Changed("days-back") {
		cfg.DaysBack = f.daysBack
	}
	if flags.Changed("days-forward") {
		cfg.DaysForward = f.daysForward
	}
	if flags.Changed("issued-status") {
		cfg.IssuedStatus = f.issued
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	if a.Stdout == nil {
		a.Stdout = cmd.OutOrStdout()
	}
	if a.Stderr == nil {
		a.Stderr = cmd.ErrOrStderr()
	}
	if a.Clock == nil {
		a.Clock = time.Now
	}
	if a.Logger == nil {
		// The board owns the terminal; without a log file its logs are dropped.
		fallback := a.Stderr
		if usesTerminal(cmd, a) {
			fallback = io.Discard
		}
		logger, closeLog, err := cfg.OpenLogger(fallback)
		if err != nil {
			return err
		}
		a.Logger = logger
		a.closers = append(a.closers, closeLog)
	}
	return nil
}

func usesTerminal(cmd *cobra.Command, a *App) bool {
	if cmd.Name() == "board" {
		return true
	}
	return !cmd.HasParent() && a.interactive()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Connect opens the backend and wires the services. It is a no-op when the
// App was wired beforehand.
func (a *App) Connect(ctx context.Context) error {
	if a.Provider != nil {
		return nil
	}
	driver, err := db.ParseDriver(a.Config.Driver)
	if err != nil {
		return err
	}
	database, err := db.Open(driver, a.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return fmt.Errorf("connecting to backend: %w", err)
	}
	a.DB = database
	a.closers = append(a.closers, database.Close)
	a.Wire(provider.NewSQLProvider(database, driver))
	return nil
}

// Wire builds the services over p: an invalidation bus, a cache in front of
// p, the aggregator and the move and status coordinators.
func (a *App) Wire(p provider.DataProvider) {
	if a.Logger == nil {
		a.Logger = slog.New(slog.DiscardHandler)
	}
	a.Provider = p
	a.Bus = provider.NewBus()
	a.Fetcher = provider.NewCachingFetcher(p, a.Bus)
	a.Aggregator = aggregator.New(a.Fetcher, a.Logger)
	a.Records = repository.NewRecords(a.Fetcher)
	a.Inbox = &service.Inbox{}

	notifier := service.MultiNotifier(service.NewLogNotifier(a.Logger), a.Inbox)
	observer := service.NewLogMutationObserver(a.Logger)
	a.Moves = service.NewMoveService(p, a.Bus, notifier, observer)
	a.Statuses = service.NewStatusService(p, a.Bus, notifier, a.Logger, observer)
}

// Close releases the database and log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}
