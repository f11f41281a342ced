package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/config"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/printer"
	"github.com/slok/jiffybox/internal/provider"
	"github.com/slok/jiffybox/internal/provider/fake"
	"github.com/slok/jiffybox/internal/provider/jiffybox"
	"github.com/slok/jiffybox/internal/storage"
	"github.com/slok/jiffybox/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	// FormatTable is the table output format.
	FormatTable = "table"
	// FormatJSON is the JSON output format.
	FormatJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug       bool
	NoLog       bool
	NoColor     bool
	LoggerType  string
	ConfigPath  string
	Token       string
	APIURL      string
	APIVersion  string
	Timeout     time.Duration
	VerifyTLS   bool
	Fake        bool
	JournalPath string
	NoJournal   bool
	Format      string

	// Flags explicitly set on the command line, they win over the config file
	// and the environment.
	setByUser map[string]*bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{setByUser: map[string]*bool{}}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger and output color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("config", "Path to the config file (default: ~/.jiffybox/config.yaml).").StringVar(&c.ConfigPath)

	c.flag(app, "token", "JiffyBox API token (env: JIFFYBOX_TOKEN).").StringVar(&c.Token)
	c.flag(app, "api-url", "JiffyBox API base URL.").StringVar(&c.APIURL)
	c.flag(app, "api-version", "JiffyBox API version.").StringVar(&c.APIVersion)
	c.flag(app, "timeout", "Timeout of each API request.").DurationVar(&c.Timeout)
	c.flag(app, "verify-tls", "Verify the API TLS certificate.").BoolVar(&c.VerifyTLS)
	c.flag(app, "journal-path", "Path to the SQLite operation journal.").StringVar(&c.JournalPath)
	c.flag(app, "no-journal", "Don't record operations in the journal.").BoolVar(&c.NoJournal)
	c.flag(app, "format", "Output format (table, json).").EnumVar(&c.Format, FormatTable, FormatJSON)

	app.Flag("fake", "Use an in-memory fake provider instead of the real API.").BoolVar(&c.Fake)

	return c
}

func (c *RootCommand) flag(app *kingpin.Application, name, help string) *kingpin.FlagClause {
	set := new(bool)
	c.setByUser[name] = set
	return app.Flag(name, help).IsSetByUser(set)
}

func (c *RootCommand) isSet(name string) bool {
	set, ok := c.setByUser[name]
	return ok && *set
}

// LoadConfig fills the global settings not set on the command line from the
// config file and the environment.
func (c *RootCommand) LoadConfig() error {
	cfg, err := config.Load(config.LoaderConfig{Path: c.ConfigPath})
	if err != nil {
		return err
	}

	if !c.isSet("token") {
		c.Token = cfg.Token
	}
	if !c.isSet("api-url") {
		c.APIURL = cfg.APIURL
	}
	if !c.isSet("api-version") {
		c.APIVersion = cfg.APIVersion
	}
	if !c.isSet("timeout") {
		c.Timeout = cfg.Timeout
	}
	if !c.isSet("verify-tls") {
		c.VerifyTLS = cfg.VerifyTLS
	}
	if !c.isSet("journal-path") {
		c.JournalPath = cfg.JournalPath
	}
	if !c.isSet("no-journal") {
		c.NoJournal = cfg.JournalDisabled
	}
	if !c.isSet("format") {
		c.Format = cfg.Format
	}

	switch c.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	return nil
}

// newProvider returns the provider the commands talk to.
func (c *RootCommand) newProvider() (provider.Provider, error) {
	if c.Fake {
		return fake.NewProvider(fake.ProviderConfig{Logger: c.Logger})
	}

	return jiffybox.NewProvider(jiffybox.ProviderConfig{
		ClientConfig: api.ClientConfig{
			Token:     c.Token,
			BaseURL:   c.APIURL,
			Version:   c.APIVersion,
			Timeout:   c.Timeout,
			VerifyTLS: c.VerifyTLS,
			Logger:    c.Logger,
		},
		Logger: c.Logger,
	})
}

// newJournalRepository opens the journal database, the returned func closes it.
func (c *RootCommand) newJournalRepository(ctx context.Context) (storage.JournalRepository, func() error, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.JournalPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create journal repository: %w", err)
	}

	return repo, repo.Close, nil
}

// newJournal returns the recorder for mutating commands, a noop one when the
// journal is disabled.
func (c *RootCommand) newJournal(ctx context.Context) (journal.Recorder, func() error, error) {
	if c.NoJournal {
		return journal.Noop, func() error { return nil }, nil
	}

	repo, closeFn, err := c.newJournalRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	rec, err := journal.NewRecorder(journal.RecorderConfig{
		Repository: repo,
		Logger:     c.Logger,
	})
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("could not create journal recorder: %w", err)
	}

	return rec, closeFn, nil
}

func (c *RootCommand) printer() printer.Printer {
	if c.Format == FormatJSON {
		return printer.NewJSONPrinter(c.Stdout)
	}
	return printer.NewTablePrinter(c.Stdout, !c.NoColor)
}

// printMessages prints the provider messages as warnings, stdout is kept for
// the command output.
func (c *RootCommand) printMessages(messages []string) {
	for _, msg := range messages {
		fmt.Fprintf(c.Stderr, "Warning: %s\n", msg)
	}
}
