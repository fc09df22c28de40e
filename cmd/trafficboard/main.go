package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brunocamargo/trafficboard/internal/cli"
	"github.com/brunocamargo/trafficboard/internal/db"
	"github.com/brunocamargo/trafficboard/internal/intake"
	"github.com/brunocamargo/trafficboard/internal/repository"
	"github.com/brunocamargo/trafficboard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.trafficboard/trafficboard.db
	dbPath := os.Getenv("TRAFFICBOARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".trafficboard", "trafficboard.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	accountRepo := repository.NewSQLiteAccountRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Notifications and use-case telemetry go to TRAFFICBOARD_LOG when
	// set; they never write to the terminal the board is drawn on.
	var opts []service.DemandServiceOption
	if logPath := os.Getenv("TRAFFICBOARD_LOG"); logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		opts = append(opts,
			service.WithNotifier(service.NewSlogNotifier(slog.New(slog.NewTextHandler(logFile, nil)))),
			service.WithObservers(service.NewLogUseCaseObserver(logFile)),
		)
	}

	app := &cli.App{
		Demands:  service.NewDemandService(database, uow, opts...),
		Accounts: service.NewAccountService(accountRepo),
		Intake:   intake.NewAdapter(accountRepo),
	}

	root := cli.NewRootCmd(app)

	// With no arguments on a terminal, open the board directly.
	if len(os.Args) == 1 && isatty.IsTerminal(os.Stdout.Fd()) {
		root.SetArgs([]string{"board"})
	}

	return root.Execute()
}
