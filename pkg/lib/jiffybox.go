package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/provider"
	"github.com/slok/jiffybox/internal/provider/fake"
	"github.com/slok/jiffybox/internal/provider/jiffybox"
	"github.com/slok/jiffybox/internal/storage"
	"github.com/slok/jiffybox/internal/storage/memory"
	"github.com/slok/jiffybox/internal/storage/sqlite"
)

// ProviderType identifies the backend the SDK talks to.
type ProviderType string

const (
	// ProviderJiffyBox uses the real JiffyBox HTTP API.
	ProviderJiffyBox ProviderType = "jiffybox"

	// ProviderFake uses an in-memory simulation of the provider.
	// Use this for unit testing without network access or a token.
	ProviderFake ProviderType = "fake"
)

// JournalInMemory as [Config.JournalPath] keeps the journal in memory for the
// life of the client.
const JournalInMemory = ":memory:"

// Config configures the SDK client.
//
// Token is required for [ProviderJiffyBox], the rest of the fields are optional.
type Config struct {
	// Token is the API token of the account.
	Token string

	// BaseURL is the API endpoint.
	// Default: https://api.jiffybox.de/.
	BaseURL string

	// Version is the API version.
	// Default: v1.0.
	Version string

	// Timeout is the timeout of every API request.
	// Default: 30s.
	Timeout time.Duration

	// VerifyTLS enables TLS certificate and host verification. It's disabled
	// by default for compatibility with the provider's historical setup,
	// enable it whenever possible.
	VerifyTLS bool

	// Provider selects the backend.
	// Default: [ProviderJiffyBox].
	Provider ProviderType

	// JournalPath is the SQLite database where mutating operations are
	// recorded. When empty, nothing is recorded and [Client.History] fails.
	// Use [JournalInMemory] to record without a database file.
	JournalPath string

	// MessageListener is called with the provider messages of every call that
	// returned at least one message.
	MessageListener func(messages []string)

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Provider == "" {
		c.Provider = ProviderJiffyBox
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.MessageListener == nil {
		c.MessageListener = func([]string) {}
	}

	return nil
}

// Client is the main SDK entry point for managing boxes programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	provider provider.Provider
	repo     storage.JournalRepository
	journal  journal.Recorder
	listener func([]string)
	logger   log.Logger
	closeFn  func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the journal
// database connection, if any. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{Token: token})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	prov, err := newProvider(cfg)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create provider: %w", err))
	}

	c := &Client{
		provider: prov,
		journal:  journal.Noop,
		listener: cfg.MessageListener,
		logger:   cfg.Logger,
	}

	if cfg.JournalPath != "" {
		repo, closeFn, err := newJournalRepository(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("could not create journal repository: %w", err)
		}

		rec, err := journal.NewRecorder(journal.RecorderConfig{
			Repository: repo,
			Logger:     cfg.Logger,
		})
		if err != nil {
			_ = closeFn()
			return nil, fmt.Errorf("could not create journal recorder: %w", err)
		}

		c.repo = repo
		c.journal = rec
		c.closeFn = closeFn
	}

	return c, nil
}

// Close releases resources held by the client.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

func newJournalRepository(ctx context.Context, cfg Config) (storage.JournalRepository, func() error, error) {
	if cfg.JournalPath == JournalInMemory {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.JournalPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return repo, repo.Close, nil
}

func newProvider(cfg Config) (provider.Provider, error) {
	switch cfg.Provider {
	case ProviderJiffyBox:
		return jiffybox.NewProvider(jiffybox.ProviderConfig{
			ClientConfig: api.ClientConfig{
				Token:     cfg.Token,
				BaseURL:   cfg.BaseURL,
				Version:   cfg.Version,
				Timeout:   cfg.Timeout,
				VerifyTLS: cfg.VerifyTLS,
				Logger:    cfg.Logger,
			},
			Logger: cfg.Logger,
		})
	case ProviderFake:
		return fake.NewProvider(fake.ProviderConfig{
			Logger: cfg.Logger,
		})
	default:
		return nil, fmt.Errorf("unsupported provider type: %s: %w", cfg.Provider, ErrNotValid)
	}
}

// notify passes the messages of a call to the configured listener.
func (c *Client) notify(messages []string) {
	if len(messages) == 0 {
		return
	}
	c.listener(append([]string(nil), messages...))
}
