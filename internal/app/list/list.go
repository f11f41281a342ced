package list

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})

	return nil
}

// Service lists boxes.
type Service struct {
	provider provider.Provider
	logger   log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// Status filters by box status (case insensitive), empty returns all.
	Status string
	// Running filters by the running flag, nil returns all.
	Running *bool
}

// Run returns the boxes matching the request, sorted by id.
func (s *Service) Run(ctx context.Context, req Request) (*model.Result[[]model.Box], error) {
	res, err := s.provider.ListBoxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list boxes: %w", err)
	}

	boxes := make([]model.Box, 0, len(res.Value))
	for _, b := range res.Value {
		if req.Status != "" && !strings.EqualFold(string(b.Status), req.Status) {
			continue
		}
		if req.Running != nil && b.Running != *req.Running {
			continue
		}
		boxes = append(boxes, b)
	}

	return &model.Result[[]model.Box]{Value: boxes, Messages: res.Messages}, nil
}
