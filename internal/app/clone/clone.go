package clone

import (
	"context"
	"fmt"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the clone service.
type ServiceConfig struct {
	Provider provider.Provider
	Journal  journal.Recorder
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Provider == nil {
		return fmt.Errorf("provider is required")
	}
	if c.Journal == nil {
		c.Journal = journal.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Clone"})
	return nil
}

// Service clones existing boxes.
type Service struct {
	provider provider.Provider
	journal  journal.Recorder
	logger   log.Logger
}

// NewService creates a new clone service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		provider: cfg.Provider,
		journal:  cfg.Journal,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the clone request parameters.
type Request struct {
	// Source is the name or id of the box to clone.
	Source string
	Name   string
	PlanID int
}

// Run clones a box into a new one.
func (s *Service) Run(ctx context.Context, req Request) (*model.Result[*model.Box], error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", model.ErrNotValid)
	}
	if req.PlanID <= 0 {
		return nil, fmt.Errorf("plan id must be positive: %w", model.ErrNotValid)
	}

	id, err := boxref.Resolve(ctx, s.provider, req.Source)
	if err != nil {
		return nil, err
	}

	inUse, err := boxref.NameInUse(ctx, s.provider, req.Name)
	if err != nil {
		return nil, fmt.Errorf("could not check name uniqueness: %w", err)
	}
	if inUse {
		return nil, fmt.Errorf("box with name %q: %w", req.Name, model.ErrAlreadyExists)
	}

	res, err := s.provider.CloneBox(ctx, id, req.Name, req.PlanID)
	if err != nil {
		s.journal.Record(ctx, journal.Failed("clone", &id, err))
		return nil, fmt.Errorf("could not clone box %d: %w", id, err)
	}

	s.journal.Record(ctx, journal.Applied("clone", &id, res.Messages))
	s.logger.Infof("Cloned box %d into %s (%d)", id, res.Value.Name, res.Value.ID)

	return res, nil
}
