package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
	"github.com/slok/jiffybox/internal/storage"
)

// ServiceConfig is the configuration for the history service.
type ServiceConfig struct {
	Repository storage.JournalRepository
	// Provider is used to resolve box names, without it only ids are accepted.
	Provider provider.Provider
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.History"})

	return nil
}

// Service lists the local operation journal.
type Service struct {
	repo     storage.JournalRepository
	provider provider.Provider
	logger   log.Logger
}

// NewService creates a new history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the history request parameters.
type Request struct {
	// NameOrID filters by box, empty returns every entry.
	NameOrID string
	Limit    int
}

// Run returns the journal entries, newest first.
func (s *Service) Run(ctx context.Context, req Request) ([]model.JournalEntry, error) {
	if req.Limit < 0 {
		return nil, fmt.Errorf("limit can't be negative: %w", model.ErrNotValid)
	}

	q := model.JournalQuery{Limit: req.Limit}

	ref := strings.TrimSpace(req.NameOrID)
	if ref != "" {
		id, ok := boxref.ParseID(ref)
		if !ok {
			if s.provider == nil {
				return nil, fmt.Errorf("box %q is not an id: %w", ref, model.ErrNotValid)
			}
			resolved, err := boxref.Resolve(ctx, s.provider, ref)
			if err != nil {
				return nil, err
			}
			id = resolved
		}
		q.BoxID = &id
	}

	entries, err := s.repo.ListEntries(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("could not list journal entries: %w", err)
	}

	return entries, nil
}
