package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/app/lifecycle"
	"github.com/slok/jiffybox/internal/model"
)

// LifecycleCommand sends a status command to a box. The same type backs the
// start, stop, freeze, pullplug and thaw commands.
type LifecycleCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	command  model.StatusCommand
	nameOrID string
	planID   int
}

func newLifecycleCommand(rootCmd *RootCommand, app *kingpin.Application, name, help string, cmd model.StatusCommand) *LifecycleCommand {
	c := &LifecycleCommand{rootCmd: rootCmd, command: cmd}

	c.Cmd = app.Command(name, help)
	c.Cmd.Arg("name-or-id", "Box name or ID, numbers are IDs (use name:<name> for numeric names).").Required().StringVar(&c.nameOrID)

	return c
}

// NewStartCommand returns the start command.
func NewStartCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	return newLifecycleCommand(rootCmd, app, "start", "Start a READY box.", model.StatusCommandStart)
}

// NewStopCommand returns the stop command.
func NewStopCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	return newLifecycleCommand(rootCmd, app, "stop", "Shut down a READY box.", model.StatusCommandShutdown)
}

// NewFreezeCommand returns the freeze command.
func NewFreezeCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	return newLifecycleCommand(rootCmd, app, "freeze", "Freeze a READY box.", model.StatusCommandFreeze)
}

// NewPullPlugCommand returns the pullplug command.
func NewPullPlugCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	return newLifecycleCommand(rootCmd, app, "pullplug", "Power off a READY box without a graceful shutdown.", model.StatusCommandPullPlug)
}

// NewThawCommand returns the thaw command.
func NewThawCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	c := newLifecycleCommand(rootCmd, app, "thaw", "Thaw a FROZEN box.", model.StatusCommandThaw)
	c.Cmd.Flag("plan-id", "Plan of the box once thawed.").Required().IntVar(&c.planID)
	return c
}

func (c LifecycleCommand) Name() string { return c.Cmd.FullCommand() }

func (c LifecycleCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	rec, closeJournal, err := c.rootCmd.newJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	svc, err := lifecycle.NewService(lifecycle.ServiceConfig{
		Provider: prov,
		Journal:  rec,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Resolved here to report the box id on rejections too.
	boxID, err := boxref.Resolve(ctx, prov, c.nameOrID)
	if err != nil {
		return fmt.Errorf("could not resolve box: %w", err)
	}

	out, err := svc.Run(ctx, lifecycle.Request{
		NameOrID: strconv.Itoa(boxID),
		Command:  c.command,
		PlanID:   c.planID,
	})
	if err != nil {
		return fmt.Errorf("could not %s box: %w", c.Name(), err)
	}
	c.rootCmd.printMessages(out.Messages)

	// A rejection is a normal outcome, the printer shows the reason.
	if err := c.rootCmd.printer().PrintTransition(boxID, *out); err != nil {
		return fmt.Errorf("could not print transition: %w", err)
	}

	return nil
}
