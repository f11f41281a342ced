package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the lifecycle service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Lifecycle"})
	return nil
}

// Service changes the status of boxes (start, stop, freeze, thaw...).
type Service struct {
	provider provider.Provider
	journal  journal.Recorder
	logger   log.Logger
}

// NewService creates a new lifecycle service.
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

// Request represents the lifecycle request parameters.
type Request struct {
	NameOrID string
	Command  model.StatusCommand
	// PlanID is the plan the box will use after thawing, only used by thaw.
	PlanID int
}

func (r Request) validate() error {
	if err := r.Command.Validate(); err != nil {
		return err
	}
	if r.Command == model.StatusCommandThaw && r.PlanID <= 0 {
		return fmt.Errorf("thaw needs a positive plan id: %w", model.ErrNotValid)
	}
	return nil
}

// Run sends the status command to the box. Rejections are returned as an
// outcome, not as an error.
func (s *Service) Run(ctx context.Context, req Request) (*model.TransitionOutcome, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	id, err := boxref.Resolve(ctx, s.provider, req.NameOrID)
	if err != nil {
		return nil, err
	}

	op := strings.ToLower(string(req.Command))
	out, err := s.provider.Transition(ctx, id, req.Command, req.PlanID)
	if err != nil {
		s.journal.Record(ctx, journal.Failed(op, &id, err))
		return nil, fmt.Errorf("could not %s box %d: %w", op, id, err)
	}

	if !out.Applied() {
		s.journal.Record(ctx, journal.Rejected(op, &id, out.Reason))
		s.logger.Infof("%s on box %d rejected: %s", req.Command, id, out.Reason)
		return out, nil
	}

	s.journal.Record(ctx, journal.Applied(op, &id, out.Messages))
	s.logger.Infof("%s sent to box %d", req.Command, id)

	return out, nil
}
