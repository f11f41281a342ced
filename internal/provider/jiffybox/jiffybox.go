package jiffybox

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/box"
	"github.com/slok/jiffybox/internal/catalog"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ProviderConfig is the configuration of the JiffyBox provider.
type ProviderConfig struct {
	// Invoker is the transport, if missing a new API client is created with ClientConfig.
	Invoker      api.Invoker
	ClientConfig api.ClientConfig
	Logger       log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Invoker == nil {
		if c.ClientConfig.Logger == nil {
			c.ClientConfig.Logger = c.Logger
		}
		client, err := api.NewClient(c.ClientConfig)
		if err != nil {
			return fmt.Errorf("could not create api client: %w", err)
		}
		c.Invoker = client
	}

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "provider.JiffyBox"})

	return nil
}

// Provider talks to the JiffyBox API.
//
// Each call uses its own box handle or catalog, so a provider can be shared
// between goroutines.
type Provider struct {
	invoker api.Invoker
	logger  log.Logger
}

var _ provider.Provider = &Provider{}

// NewProvider returns a new JiffyBox provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Provider{
		invoker: cfg.Invoker,
		logger:  cfg.Logger,
	}, nil
}

func (p *Provider) handle(id *int) (*box.Handle, error) {
	return box.NewHandle(box.HandleConfig{
		Invoker: p.invoker,
		ID:      id,
		Logger:  p.logger,
	})
}

func (p *Provider) catalog() (*catalog.Catalog, error) {
	return catalog.NewCatalog(catalog.CatalogConfig{
		Invoker: p.invoker,
		Logger:  p.logger,
	})
}

func (p *Provider) CreateBox(ctx context.Context, spec model.BoxSpec) (*model.Result[*model.Box], error) {
	h, err := p.handle(nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.Create(ctx, spec)
	if err != nil {
		return nil, err
	}

	return boxResult(resp)
}

func (p *Provider) CloneBox(ctx context.Context, id int, name string, planID int) (*model.Result[*model.Box], error) {
	h, err := p.handle(&id)
	if err != nil {
		return nil, err
	}

	resp, err := h.Clone(ctx, name, planID)
	if err != nil {
		return nil, err
	}

	return boxResult(resp)
}

func (p *Provider) DeleteBox(ctx context.Context, id int) (*model.Result[bool], error) {
	h, err := p.handle(&id)
	if err != nil {
		return nil, err
	}

	resp, err := h.Delete(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkRefused(resp); err != nil {
		return nil, err
	}

	return &model.Result[bool]{Value: true, Messages: resp.Messages}, nil
}

func (p *Provider) GetBox(ctx context.Context, id int) (*model.Result[*model.Box], error) {
	h, err := p.handle(&id)
	if err != nil {
		return nil, err
	}

	resp, err := h.Get(ctx)
	if err != nil {
		return nil, err
	}

	return boxResult(resp)
}

func (p *Provider) ListBoxes(ctx context.Context) (*model.Result[[]model.Box], error) {
	c, err := p.catalog()
	if err != nil {
		return nil, err
	}

	resp, err := c.Boxes(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRefused(resp); err != nil {
		return nil, err
	}

	boxes, err := box.DecodeBoxList(resp)
	if err != nil {
		return nil, err
	}

	return &model.Result[[]model.Box]{Value: boxes, Messages: resp.Messages}, nil
}

func (p *Provider) Transition(ctx context.Context, id int, cmd model.StatusCommand, planID int) (*model.TransitionOutcome, error) {
	h, err := p.handle(&id)
	if err != nil {
		return nil, err
	}

	tr, err := h.Transition(ctx, cmd, planID)
	if err != nil {
		return nil, err
	}

	outcome := &model.TransitionOutcome{
		State:    tr.State,
		Command:  tr.Command,
		Observed: tr.Observed,
		Reason:   tr.Reason,
		Messages: []string{},
	}
	if tr.Response == nil {
		return outcome, nil
	}

	outcome.Messages = tr.Response.Messages
	if err := checkRefused(tr.Response); err != nil {
		return nil, err
	}

	// Some answers don't carry the box record, that's fine.
	if b, err := box.DecodeBox(tr.Response); err == nil {
		outcome.Box = b
	} else {
		p.logger.Debugf("Transition answer without box record: %s", err)
	}

	return outcome, nil
}

func (p *Provider) Backups(ctx context.Context, id int) (*model.Result[*model.BoxBackups], error) {
	h, err := p.handle(&id)
	if err != nil {
		return nil, err
	}

	resp, err := h.Backups(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRefused(resp); err != nil {
		return nil, err
	}

	backups, err := box.DecodeBackups(resp)
	if err != nil {
		return nil, err
	}

	return &model.Result[*model.BoxBackups]{Value: backups, Messages: resp.Messages}, nil
}

func (p *Provider) Plans(ctx context.Context) (*model.Result[[]model.Plan], error) {
	c, err := p.catalog()
	if err != nil {
		return nil, err
	}

	resp, err := c.Plans(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRefused(resp); err != nil {
		return nil, err
	}

	plans, err := catalog.DecodePlans(resp)
	if err != nil {
		return nil, err
	}

	return &model.Result[[]model.Plan]{Value: plans, Messages: resp.Messages}, nil
}

func (p *Provider) Distributions(ctx context.Context) (*model.Result[[]model.Distribution], error) {
	c, err := p.catalog()
	if err != nil {
		return nil, err
	}

	resp, err := c.Distributions(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRefused(resp); err != nil {
		return nil, err
	}

	dists, err := catalog.DecodeDistributions(resp)
	if err != nil {
		return nil, err
	}

	return &model.Result[[]model.Distribution]{Value: dists, Messages: resp.Messages}, nil
}

func (p *Provider) IPs(ctx context.Context) (*model.Result[json.RawMessage], error) {
	c, err := p.catalog()
	if err != nil {
		return nil, err
	}

	resp, err := c.IPs(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Result[json.RawMessage]{Value: resp.Result, Messages: resp.Messages}, nil
}

func (p *Provider) Doc(ctx context.Context, sub string) (*model.Result[json.RawMessage], error) {
	c, err := p.catalog()
	if err != nil {
		return nil, err
	}

	resp, err := c.Doc(ctx, sub)
	if err != nil {
		return nil, err
	}

	return &model.Result[json.RawMessage]{Value: resp.Result, Messages: resp.Messages}, nil
}

func boxResult(resp *api.Response) (*model.Result[*model.Box], error) {
	if err := checkRefused(resp); err != nil {
		return nil, err
	}

	b, err := box.DecodeBox(resp)
	if err != nil {
		return nil, err
	}

	return &model.Result[*model.Box]{Value: b, Messages: resp.Messages}, nil
}

// checkRefused fails when the provider answered with a false result.
func checkRefused(resp *api.Response) error {
	if strings.TrimSpace(string(resp.Result)) != "false" {
		return nil
	}

	if len(resp.Messages) == 0 {
		return model.ErrRefused
	}
	return fmt.Errorf("%s: %w", strings.Join(resp.Messages, "; "), model.ErrRefused)
}
