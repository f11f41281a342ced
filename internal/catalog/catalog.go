package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
)

// CatalogConfig is the configuration of the catalog client.
type CatalogConfig struct {
	Invoker api.Invoker
	Logger  log.Logger
}

func (c *CatalogConfig) defaults() error {
	if c.Invoker == nil {
		return fmt.Errorf("invoker is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "catalog.Catalog"})

	return nil
}

// Catalog reads the provider collections that don't belong to a single box.
type Catalog struct {
	invoker api.Invoker
	logger  log.Logger
	diag    api.Diagnostics
}

// NewCatalog returns a new catalog client.
func NewCatalog(cfg CatalogConfig) (*Catalog, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Catalog{
		invoker: cfg.Invoker,
		logger:  cfg.Logger,
	}, nil
}

// Distributions returns the installable distributions.
func (c *Catalog) Distributions(ctx context.Context) (*api.Response, error) {
	return c.get(ctx, api.CollectionDistributions)
}

// Plans returns the available plans.
func (c *Catalog) Plans(ctx context.Context) (*api.Response, error) {
	return c.get(ctx, api.CollectionPlans)
}

// IPs returns the IPs of the account.
func (c *Catalog) IPs(ctx context.Context) (*api.Response, error) {
	return c.get(ctx, api.CollectionIPs)
}

// Boxes returns all the boxes of the account.
func (c *Catalog) Boxes(ctx context.Context) (*api.Response, error) {
	return c.get(ctx, api.CollectionBoxes)
}

// Doc returns the API documentation, optionally of a single subcommand.
func (c *Catalog) Doc(ctx context.Context, subcommand string) (*api.Response, error) {
	subcommand = strings.Trim(subcommand, "/")
	if strings.ContainsAny(subcommand, "?#") {
		return nil, fmt.Errorf("invalid doc subcommand %q: %w", subcommand, model.ErrNotValid)
	}

	collection := api.CollectionDoc
	if subcommand != "" {
		collection += "/" + subcommand
	}

	return c.get(ctx, collection)
}

// LastError returns the transport error text of the last call.
func (c *Catalog) LastError() string { return c.diag.LastError() }

// LastMessages returns the provider messages of the last call.
func (c *Catalog) LastMessages() []string { return c.diag.LastMessages() }

func (c *Catalog) get(ctx context.Context, collection string) (*api.Response, error) {
	c.logger.Debugf("Getting %s", collection)

	resp, err := c.diag.Track(func() (*api.Response, error) {
		return c.invoker.Do(ctx, api.Request{
			Method:     http.MethodGet,
			Collection: collection,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("could not get %s: %w", collection, err)
	}

	return resp, nil
}
