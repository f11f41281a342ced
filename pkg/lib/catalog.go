package lib

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slok/jiffybox/internal/app/catalog"
	"github.com/slok/jiffybox/internal/model"
)

// Plans returns the available box plans.
func (c *Client) Plans(ctx context.Context) (*Result[[]Plan], error) {
	resp, err := c.catalog(ctx, model.CatalogKindPlans, "")
	if err != nil {
		return nil, err
	}
	return &Result[[]Plan]{Value: fromInternalPlanList(resp.Plans), Messages: resp.Messages}, nil
}

// Distributions returns the installable distributions.
func (c *Client) Distributions(ctx context.Context) (*Result[[]Distribution], error) {
	resp, err := c.catalog(ctx, model.CatalogKindDistributions, "")
	if err != nil {
		return nil, err
	}
	return &Result[[]Distribution]{Value: fromInternalDistributionList(resp.Distributions), Messages: resp.Messages}, nil
}

// IPs returns the IP addresses of the account as the raw provider JSON.
func (c *Client) IPs(ctx context.Context) (*Result[json.RawMessage], error) {
	resp, err := c.catalog(ctx, model.CatalogKindIPs, "")
	if err != nil {
		return nil, err
	}
	return &Result[json.RawMessage]{Value: resp.Raw, Messages: resp.Messages}, nil
}

// Doc returns the API documentation, for a specific subject when sub is not empty.
func (c *Client) Doc(ctx context.Context, sub string) (*Result[json.RawMessage], error) {
	resp, err := c.catalog(ctx, model.CatalogKindDoc, sub)
	if err != nil {
		return nil, err
	}
	return &Result[json.RawMessage]{Value: resp.Raw, Messages: resp.Messages}, nil
}

func (c *Client) catalog(ctx context.Context, kind model.CatalogKind, sub string) (*catalog.Response, error) {
	svc, err := catalog.NewService(catalog.ServiceConfig{
		Provider: c.provider,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, catalog.Request{Kind: kind, Sub: sub})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(resp.Messages)

	return resp, nil
}
