package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/remove"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
}

// NewRemoveCommand returns the remove command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a box, it must not be running.")
	c.Cmd.Arg("name-or-id", "Box name or ID, numbers are IDs (use name:<name> for numeric names).").Required().StringVar(&c.nameOrID)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	rec, closeJournal, err := c.rootCmd.newJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	svc, err := remove.NewService(remove.ServiceConfig{
		Provider: prov,
		Journal:  rec,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, remove.Request{NameOrID: c.nameOrID})
	if err != nil {
		return fmt.Errorf("could not remove box: %w", err)
	}
	c.rootCmd.printMessages(res.Messages)

	if err := c.rootCmd.printer().PrintMessage(fmt.Sprintf("Removed box: %d", res.BoxID)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
