package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/storage"
	"github.com/slok/jiffybox/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.JournalRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

var _ storage.JournalRepository = &Repository{}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(migrations.MigratorConfig{DB: db, Logger: cfg.Logger})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	version, err := migrator.Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite journal at %s (schema v%d)", cfg.DBPath, version)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// AddEntry stores a new journal entry.
func (r *Repository) AddEntry(ctx context.Context, e model.JournalEntry) error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required: %w", model.ErrNotValid)
	}

	msgs := e.Messages
	if msgs == nil {
		msgs = []string{}
	}
	msgsJSON, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("could not encode messages: %w", err)
	}

	query := `
		INSERT INTO journal_entries (
			id, box_id, operation, outcome, messages, error, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		e.ID,
		e.BoxID,
		e.Operation,
		string(e.Outcome),
		string(msgsJSON),
		e.Error,
		e.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: journal_entries.") {
			return fmt.Errorf("journal entry %s: %w", e.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert journal entry: %w", err)
	}

	r.logger.Debugf("Added journal entry %s", e.ID)
	return nil
}

// ListEntries returns the entries matching the query, newest first.
func (r *Repository) ListEntries(ctx context.Context, q model.JournalQuery) ([]model.JournalEntry, error) {
	query := `
		SELECT id, box_id, operation, outcome, messages, error, created_at
		FROM journal_entries
	`
	args := []any{}
	if q.BoxID != nil {
		query += " WHERE box_id = ?"
		args = append(args, *q.BoxID)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate rows: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (model.JournalEntry, error) {
	var (
		e         model.JournalEntry
		boxID     sql.NullInt64
		outcome   string
		msgsJSON  string
		createdAt int64
	)

	err := s.Scan(&e.ID, &boxID, &e.Operation, &outcome, &msgsJSON, &e.Error, &createdAt)
	if err != nil {
		return e, err
	}

	if boxID.Valid {
		id := int(boxID.Int64)
		e.BoxID = &id
	}
	e.Outcome = model.JournalOutcome(outcome)
	e.CreatedAt = time.Unix(createdAt, 0).UTC()

	if err := json.Unmarshal([]byte(msgsJSON), &e.Messages); err != nil {
		return e, fmt.Errorf("could not decode messages: %w", err)
	}

	return e, nil
}
