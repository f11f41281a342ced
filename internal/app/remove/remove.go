package remove

import (
	"context"
	"fmt"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})
	return nil
}

// Service deletes boxes.
type Service struct {
	provider provider.Provider
	journal  journal.Recorder
	logger   log.Logger
}

// NewService creates a new remove service.
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

// Request represents the remove request parameters.
type Request struct {
	NameOrID string
}

// Response is the result of removing a box.
type Response struct {
	BoxID    int
	Messages []string
}

// Run deletes a box by name or id.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	id, err := boxref.Resolve(ctx, s.provider, req.NameOrID)
	if err != nil {
		return nil, err
	}

	res, err := s.provider.DeleteBox(ctx, id)
	if err != nil {
		s.journal.Record(ctx, journal.Failed("rm", &id, err))
		return nil, fmt.Errorf("could not delete box %d: %w", id, err)
	}

	s.journal.Record(ctx, journal.Applied("rm", &id, res.Messages))
	s.logger.Infof("Deleted box %d", id)

	return &Response{BoxID: id, Messages: res.Messages}, nil
}
