package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/jiffybox/cmd/jiffybox/commands"
	"github.com/slok/jiffybox/internal/log"
	loglogrus "github.com/slok/jiffybox/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("jiffybox", "JiffyBox virtual machine management tool.")
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	createCmd := commands.NewCreateCommand(rootCmd, app)
	cloneCmd := commands.NewCloneCommand(rootCmd, app)
	removeCmd := commands.NewRemoveCommand(rootCmd, app)
	statusCmd := commands.NewStatusCommand(rootCmd, app)
	listCmd := commands.NewListCommand(rootCmd, app)
	startCmd := commands.NewStartCommand(rootCmd, app)
	stopCmd := commands.NewStopCommand(rootCmd, app)
	freezeCmd := commands.NewFreezeCommand(rootCmd, app)
	pullPlugCmd := commands.NewPullPlugCommand(rootCmd, app)
	thawCmd := commands.NewThawCommand(rootCmd, app)
	backupsCmd := commands.NewBackupsCommand(rootCmd, app)
	plansCmd := commands.NewPlansCommand(rootCmd, app)
	distributionsCmd := commands.NewDistributionsCommand(rootCmd, app)
	ipsCmd := commands.NewIPsCommand(rootCmd, app)
	docCmd := commands.NewDocCommand(rootCmd, app)
	historyCmd := commands.NewHistoryCommand(rootCmd, app)

	cmds := map[string]commands.Command{
		createCmd.Name():        createCmd,
		cloneCmd.Name():         cloneCmd,
		removeCmd.Name():        removeCmd,
		statusCmd.Name():        statusCmd,
		listCmd.Name():          listCmd,
		startCmd.Name():         startCmd,
		stopCmd.Name():          stopCmd,
		freezeCmd.Name():        freezeCmd,
		pullPlugCmd.Name():      pullPlugCmd,
		thawCmd.Name():          thawCmd,
		backupsCmd.Name():       backupsCmd,
		plansCmd.Name():         plansCmd,
		distributionsCmd.Name(): distributionsCmd,
		ipsCmd.Name():           ipsCmd,
		docCmd.Name():           docCmd,
		historyCmd.Name():       historyCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Flags win over the config file and the environment.
	if err := rootCmd.LoadConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"list":          true,
		"status":        true,
		"backups":       true,
		"plans":         true,
		"distributions": true,
		"ips":           true,
		"doc":           true,
		"history":       true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	backend := "jiffybox"
	if config.Fake {
		backend = "fake"
	}
	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version":  Version,
		"provider": backend,
	})

	// The token is part of request URLs, never log those.
	logger.Debugf("Debug level is enabled, API %s (%s), journal %q", config.APIURL, config.APIVersion, config.JournalPath)

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
