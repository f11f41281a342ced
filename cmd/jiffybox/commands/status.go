package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/status"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	namesOrIDs []string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Get detailed status of one or more boxes.")
	c.Cmd.Arg("name-or-id", "Box names or IDs, numbers are IDs (use name:<name> for numeric names).").Required().StringsVar(&c.namesOrIDs)

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	svc, err := status.NewService(status.ServiceConfig{
		Provider: prov,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, status.Request{NamesOrIDs: c.namesOrIDs})
	if err != nil {
		return fmt.Errorf("could not get box status: %w", err)
	}
	c.rootCmd.printMessages(res.Messages)

	p := c.rootCmd.printer()
	if len(res.Value) == 1 {
		err = p.PrintBox(res.Value[0])
	} else {
		err = p.PrintBoxes(res.Value)
	}
	if err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
