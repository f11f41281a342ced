package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/clone"
)

type CloneCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	source string
	name   string
	planID int
}

// NewCloneCommand returns the clone command.
func NewCloneCommand(rootCmd *RootCommand, app *kingpin.Application) *CloneCommand {
	c := &CloneCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("clone", "Clone a box into a new one.")
	c.Cmd.Arg("name-or-id", "Box to clone, by name or ID (use name:<name> for numeric names).").Required().StringVar(&c.source)
	c.Cmd.Flag("name", "Name for the new box.").Short('n').Required().StringVar(&c.name)
	c.Cmd.Flag("plan-id", "Plan of the new box.").Required().IntVar(&c.planID)

	return c
}

func (c CloneCommand) Name() string { return c.Cmd.FullCommand() }

func (c CloneCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	rec, closeJournal, err := c.rootCmd.newJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	svc, err := clone.NewService(clone.ServiceConfig{
		Provider: prov,
		Journal:  rec,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, clone.Request{
		Source: c.source,
		Name:   c.name,
		PlanID: c.planID,
	})
	if err != nil {
		return fmt.Errorf("could not clone box: %w", err)
	}
	c.rootCmd.printMessages(res.Messages)

	if err := c.rootCmd.printer().PrintBox(*res.Value); err != nil {
		return fmt.Errorf("could not print box: %w", err)
	}

	return nil
}
