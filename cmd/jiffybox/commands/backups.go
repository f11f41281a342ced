package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/backups"
	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/model"
)

type BackupsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
}

// NewBackupsCommand returns the backups command.
func NewBackupsCommand(rootCmd *RootCommand, app *kingpin.Application) *BackupsCommand {
	c := &BackupsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("backups", "Show the backups of a box.")
	c.Cmd.Arg("name-or-id", "Box name or ID, numbers are IDs (use name:<name> for numeric names).").Required().StringVar(&c.nameOrID)

	return c
}

func (c BackupsCommand) Name() string { return c.Cmd.FullCommand() }

func (c BackupsCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	svc, err := backups.NewService(backups.ServiceConfig{
		Provider: prov,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	boxID, err := boxref.Resolve(ctx, prov, c.nameOrID)
	if err != nil {
		return fmt.Errorf("could not resolve box: %w", err)
	}

	res, err := svc.Run(ctx, backups.Request{NameOrID: strconv.Itoa(boxID)})
	if err != nil {
		return fmt.Errorf("could not get backups: %w", err)
	}
	c.rootCmd.printMessages(res.Messages)

	bks := model.BoxBackups{}
	if res.Value != nil {
		bks = *res.Value
	}
	if err := c.rootCmd.printer().PrintBackups(boxID, bks); err != nil {
		return fmt.Errorf("could not print backups: %w", err)
	}

	return nil
}
