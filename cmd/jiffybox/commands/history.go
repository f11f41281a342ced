package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/history"
	"github.com/slok/jiffybox/internal/provider"
)

type HistoryCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
	limit    int
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand(rootCmd *RootCommand, app *kingpin.Application) *HistoryCommand {
	c := &HistoryCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("history", "Show the local journal of operations, newest first.")
	c.Cmd.Arg("name-or-id", "Only show the operations of this box.").StringVar(&c.nameOrID)
	c.Cmd.Flag("limit", "Max number of entries, 0 shows all.").Short('l').Default("20").IntVar(&c.limit)

	return c
}

func (c HistoryCommand) Name() string { return c.Cmd.FullCommand() }

func (c HistoryCommand) Run(ctx context.Context) error {
	if c.rootCmd.NoJournal {
		return fmt.Errorf("the journal is disabled")
	}

	repo, closeRepo, err := c.rootCmd.newJournalRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Names need the provider to be resolved, ids work offline.
	var prov provider.Provider
	if c.rootCmd.Fake || c.rootCmd.Token != "" {
		prov, err = c.rootCmd.newProvider()
		if err != nil {
			return fmt.Errorf("could not create provider: %w", err)
		}
	}

	svc, err := history.NewService(history.ServiceConfig{
		Repository: repo,
		Provider:   prov,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	entries, err := svc.Run(ctx, history.Request{
		NameOrID: c.nameOrID,
		Limit:    c.limit,
	})
	if err != nil {
		return fmt.Errorf("could not get history: %w", err)
	}

	if err := c.rootCmd.printer().PrintJournal(entries); err != nil {
		return fmt.Errorf("could not print history: %w", err)
	}

	return nil
}
