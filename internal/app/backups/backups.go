package backups

import (
	"context"
	"fmt"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the backups service.
type ServiceConfig struct {
	Provider provider.Provider
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Provider == nil {
		return fmt.Errorf("provider is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Backups"})

	return nil
}

// Service gets the backups of a box.
type Service struct {
	provider provider.Provider
	logger   log.Logger
}

// NewService creates a new backups service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the backups request parameters.
type Request struct {
	NameOrID string
}

// Run returns the backups of the box.
func (s *Service) Run(ctx context.Context, req Request) (*model.Result[*model.BoxBackups], error) {
	id, err := boxref.Resolve(ctx, s.provider, req.NameOrID)
	if err != nil {
		return nil, err
	}

	res, err := s.provider.Backups(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get backups of box %d: %w", id, err)
	}

	return res, nil
}
