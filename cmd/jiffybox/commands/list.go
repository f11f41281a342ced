package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/list"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	status       string
	running      bool
	runningIsSet bool
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all boxes.")
	c.Cmd.Alias("ls")
	c.Cmd.Flag("status", "Filter by status (e.g. READY, FROZEN).").StringVar(&c.status)
	c.Cmd.Flag("running", "Filter by running (--running) or stopped (--no-running) boxes.").IsSetByUser(&c.runningIsSet).BoolVar(&c.running)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	svc, err := list.NewService(list.ServiceConfig{
		Provider: prov,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := list.Request{Status: c.status}
	if c.runningIsSet {
		req.Running = &c.running
	}

	res, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not list boxes: %w", err)
	}
	c.rootCmd.printMessages(res.Messages)

	if err := c.rootCmd.printer().PrintBoxes(res.Value); err != nil {
		return fmt.Errorf("could not print boxes: %w", err)
	}

	return nil
}
