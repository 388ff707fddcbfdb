// Package migrations holds the embedded SQL schema and runs it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"

	"civic/internal/errors"

	"github.com/pressly/goose/v3"
)

const dialect = goose.DialectPostgres

//go:embed sql/*.sql
var embedded embed.FS

// FS returns the migration files rooted at the directory holding them.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}

	return sub
}

// Command is a goose operation supported by the migrator.
type Command string

const (
	CommandUp      Command = "up"
	CommandDown    Command = "down"
	CommandStatus  Command = "status"
	CommandVersion Command = "version"
)

// Migrator applies the embedded migrations to a database.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMigrator creates a migrator for the given connection.
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	return m.Run(ctx, CommandUp)
}

// Run executes a single goose command against the embedded migrations.
func (m *Migrator) Run(ctx context.Context, cmd Command) error {
	provider, err := goose.NewProvider(dialect, m.db, FS())
	if err != nil {
		return errors.Wrap(err, "create goose provider")
	}

	switch cmd {
	case CommandUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return errors.Wrap(err, "apply migrations")
		}
		for _, res := range results {
			m.logger.Info("Migration applied",
				slog.Int64("version", res.Source.Version),
				slog.String("file", res.Source.Path),
				slog.Duration("duration", res.Duration),
			)
		}
	case CommandDown:
		res, err := provider.Down(ctx)
		if err != nil {
			return errors.Wrap(err, "roll back migration")
		}
		m.logger.Info("Migration rolled back", slog.Int64("version", res.Source.Version))
	case CommandStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return errors.Wrap(err, "migration status")
		}
		for _, st := range statuses {
			m.logger.Info("Migration status",
				slog.Int64("version", st.Source.Version),
				slog.String("file", st.Source.Path),
				slog.String("state", string(st.State)),
			)
		}
	case CommandVersion:
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return errors.Wrap(err, "migration version")
		}
		m.logger.Info("Migration version", slog.Int64("version", version))
	default:
		return errors.Errorf("unknown migration command %q", cmd)
	}

	return nil
}
