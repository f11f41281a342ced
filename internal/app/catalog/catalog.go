package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ServiceConfig is the configuration for the catalog service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Catalog"})

	return nil
}

// Service reads the provider catalog.
type Service struct {
	provider provider.Provider
	logger   log.Logger
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the catalog request parameters.
type Request struct {
	Kind model.CatalogKind
	// Sub is the documentation subject, only used by the doc kind.
	Sub string
}

// Response has the field of the requested kind set.
type Response struct {
	Kind          model.CatalogKind
	Plans         []model.Plan
	Distributions []model.Distribution
	// Raw is the opaque result of ips and doc.
	Raw      json.RawMessage
	Messages []string
}

// Run gets the requested catalog.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	resp := &Response{Kind: req.Kind}

	switch req.Kind {
	case model.CatalogKindPlans:
		res, err := s.provider.Plans(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get plans: %w", err)
		}
		resp.Plans, resp.Messages = res.Value, res.Messages

	case model.CatalogKindDistributions:
		res, err := s.provider.Distributions(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get distributions: %w", err)
		}
		resp.Distributions, resp.Messages = res.Value, res.Messages

	case model.CatalogKindIPs:
		res, err := s.provider.IPs(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get ips: %w", err)
		}
		resp.Raw, resp.Messages = res.Value, res.Messages

	case model.CatalogKindDoc:
		res, err := s.provider.Doc(ctx, req.Sub)
		if err != nil {
			return nil, fmt.Errorf("could not get doc: %w", err)
		}
		resp.Raw, resp.Messages = res.Value, res.Messages

	default:
		return nil, fmt.Errorf("unknown catalog %q: %w", req.Kind, model.ErrNotValid)
	}

	return resp, nil
}
