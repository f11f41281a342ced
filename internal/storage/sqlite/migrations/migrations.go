package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/slok/jiffybox/internal/log"
)

//go:embed sql/*.sql
var journalMigrations embed.FS

// DefaultTable is the table where the applied journal schema version is tracked.
const DefaultTable = "journal_schema_migrations"

// MigratorConfig is the configuration of the journal schema migrator.
type MigratorConfig struct {
	DB *sql.DB
	// Table tracks the applied version. Default: DefaultTable.
	Table  string
	Logger log.Logger
}

func (c *MigratorConfig) defaults() error {
	if c.DB == nil {
		return fmt.Errorf("db is required")
	}

	if c.Table == "" {
		c.Table = DefaultTable
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLiteMigrator"})

	return nil
}

// Migrator applies the embedded journal schema.
type Migrator struct {
	db     *sql.DB
	table  string
	logger log.Logger
}

// NewMigrator returns a new journal schema migrator.
func NewMigrator(cfg MigratorConfig) (*Migrator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Migrator{
		db:     cfg.DB,
		table:  cfg.Table,
		logger: cfg.Logger,
	}, nil
}

// Up brings the journal schema to the latest version and returns it.
func (m *Migrator) Up(ctx context.Context) (uint, error) {
	var version uint
	err := m.run(ctx, func(inst *migrate.Migrate) error {
		if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not apply journal schema: %w", err)
		}

		v, err := currentVersion(inst)
		if err != nil {
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return 0, err
	}

	m.logger.Debugf("Journal schema at version %d", version)
	return version, nil
}

// Down removes the journal schema.
func (m *Migrator) Down(ctx context.Context) error {
	err := m.run(ctx, func(inst *migrate.Migrate) error {
		if err := inst.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not remove journal schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debugf("Journal schema removed")
	return nil
}

// Version returns the applied journal schema version, 0 when none was applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	var version uint
	err := m.run(ctx, func(inst *migrate.Migrate) error {
		v, err := currentVersion(inst)
		version = v
		return err
	})
	return version, err
}

func currentVersion(inst *migrate.Migrate) (uint, error) {
	v, dirty, err := inst.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not get journal schema version: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("journal schema version %d is dirty", v)
	}
	return v, nil
}

// run executes fn with a migrate instance over the embedded sources. The
// instance is not closed because that would close the shared database.
func (m *Migrator) run(ctx context.Context, fn func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{MigrationsTable: m.table})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	src, err := iofs.New(journalMigrations, "sql")
	if err != nil {
		return fmt.Errorf("could not load journal migrations: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.logger.Warningf("Could not close journal migrations source: %s", err)
		}
	}()

	inst, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	return fn(inst)
}
