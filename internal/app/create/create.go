package create

import (
	"context"
	"fmt"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the create service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Create"})
	return nil
}

// Service handles box creation.
type Service struct {
	provider provider.Provider
	journal  journal.Recorder
	logger   log.Logger
}

// NewService creates a new create service.
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

// Request represents the create request parameters.
type Request struct {
	Spec model.BoxSpec
	// AllowDuplicateName skips the name uniqueness check.
	AllowDuplicateName bool
}

// Run creates a new box.
func (s *Service) Run(ctx context.Context, req Request) (*model.Result[*model.Box], error) {
	if err := req.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid box spec: %w", err)
	}

	// Names are used to reference boxes, keep them unique unless asked otherwise.
	if !req.AllowDuplicateName {
		inUse, err := boxref.NameInUse(ctx, s.provider, req.Spec.Name)
		if err != nil {
			return nil, fmt.Errorf("could not check name uniqueness: %w", err)
		}
		if inUse {
			return nil, fmt.Errorf("box with name %q: %w", req.Spec.Name, model.ErrAlreadyExists)
		}
	}

	res, err := s.provider.CreateBox(ctx, req.Spec)
	if err != nil {
		s.journal.Record(ctx, journal.Failed("create", nil, err))
		return nil, fmt.Errorf("could not create box: %w", err)
	}

	s.journal.Record(ctx, journal.Applied("create", &res.Value.ID, res.Messages))
	s.logger.Infof("Created box: %s (%d)", res.Value.Name, res.Value.ID)

	return res, nil
}
