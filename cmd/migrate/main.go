package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"civic/config"
	logs "civic/internal/infra/log"
	"civic/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

// Supported subcommands:
// - up:      Apply every pending migration
// - down:    Roll back the latest migration
// - status:  Print the state of each migration
// - version: Print the current schema version

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Upper bound for the whole migration run")
	flag.Usage = printUsage
	flag.Parse()

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd migrations.Command) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	logger.Info("Running migration command", slog.String("command", string(cmd)))

	return migrations.NewMigrator(sqlDB, logger).Run(ctx, cmd)
}

var commands = []migrations.Command{
	migrations.CommandUp,
	migrations.CommandDown,
	migrations.CommandStatus,
	migrations.CommandVersion,
}

func parseCommand(args []string) (migrations.Command, error) {
	if len(args) != 1 {
		return "", errors.New("exactly one subcommand is required")
	}

	cmd := migrations.Command(args[0])
	if !slices.Contains(commands, cmd) {
		return "", errors.Errorf("unknown subcommand %q", args[0])
	}

	return cmd, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [-timeout 5m] <up|down|status|version>")
	flag.PrintDefaults()
}
