package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.JournalRepository.
type Repository struct {
	entries map[string]model.JournalEntry
	mu      sync.RWMutex
	logger  log.Logger
}

var _ storage.JournalRepository = &Repository{}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		entries: make(map[string]model.JournalEntry),
		logger:  cfg.Logger,
	}, nil
}

// AddEntry stores a new journal entry.
func (r *Repository) AddEntry(ctx context.Context, e model.JournalEntry) error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.ID]; ok {
		return fmt.Errorf("journal entry %s: %w", e.ID, model.ErrAlreadyExists)
	}

	e.Messages = append([]string{}, e.Messages...)
	if e.BoxID != nil {
		id := *e.BoxID
		e.BoxID = &id
	}
	r.entries[e.ID] = e

	r.logger.Debugf("Added journal entry %s", e.ID)
	return nil
}

// ListEntries returns the entries matching the query, newest first.
func (r *Repository) ListEntries(ctx context.Context, q model.JournalQuery) ([]model.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]model.JournalEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if q.BoxID != nil && (e.BoxID == nil || *e.BoxID != *q.BoxID) {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	return entries, nil
}
