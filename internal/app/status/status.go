package status

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

const defaultConcurrency = 4

// ServiceConfig is the configuration for the status service.
type ServiceConfig struct {
	Provider provider.Provider
	// Concurrency is the max number of boxes queried at the same time.
	Concurrency int
	Logger      log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Provider == nil {
		return fmt.Errorf("provider is required")
	}

	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Status"})

	return nil
}

// Service retrieves the current state of boxes.
type Service struct {
	provider    provider.Provider
	concurrency int
	logger      log.Logger
}

// NewService creates a new status service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		provider:    cfg.Provider,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}, nil
}

// Request represents the status request parameters.
type Request struct {
	// NamesOrIDs are the boxes to get, by name or id.
	NamesOrIDs []string
}

// Run returns the boxes in the same order they were requested, the messages
// of every box are merged in that order too. The first failure cancels the
// rest of the queries.
func (s *Service) Run(ctx context.Context, req Request) (*model.Result[[]model.Box], error) {
	if len(req.NamesOrIDs) == 0 {
		return nil, fmt.Errorf("at least one box is required: %w", model.ErrNotValid)
	}

	results := make([]*model.Result[*model.Box], len(req.NamesOrIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ref := range req.NamesOrIDs {
		g.Go(func() error {
			id, err := boxref.Resolve(gctx, s.provider, ref)
			if err != nil {
				return err
			}

			res, err := s.provider.GetBox(gctx, id)
			if err != nil {
				return fmt.Errorf("could not get box %d: %w", id, err)
			}
			results[i] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.Result[[]model.Box]{
		Value:    make([]model.Box, 0, len(results)),
		Messages: []string{},
	}
	for _, r := range results {
		out.Value = append(out.Value, *r.Value)
		out.Messages = append(out.Messages, r.Messages...)
	}

	s.logger.Debugf("Got status of %d boxes", len(out.Value))

	return out, nil
}
