package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/catalog"
	"github.com/slok/jiffybox/internal/model"
)

// CatalogCommand prints a read only catalog of the provider. The same type
// backs the plans, distributions, ips and doc commands.
type CatalogCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	kind model.CatalogKind
	sub  string
}

func newCatalogCommand(rootCmd *RootCommand, app *kingpin.Application, help string, kind model.CatalogKind) *CatalogCommand {
	c := &CatalogCommand{rootCmd: rootCmd, kind: kind}
	c.Cmd = app.Command(string(kind), help)
	return c
}

// NewPlansCommand returns the plans command.
func NewPlansCommand(rootCmd *RootCommand, app *kingpin.Application) *CatalogCommand {
	return newCatalogCommand(rootCmd, app, "List the available box plans.", model.CatalogKindPlans)
}

// NewDistributionsCommand returns the distributions command.
func NewDistributionsCommand(rootCmd *RootCommand, app *kingpin.Application) *CatalogCommand {
	return newCatalogCommand(rootCmd, app, "List the installable distributions.", model.CatalogKindDistributions)
}

// NewIPsCommand returns the ips command.
func NewIPsCommand(rootCmd *RootCommand, app *kingpin.Application) *CatalogCommand {
	return newCatalogCommand(rootCmd, app, "Show the IP addresses of the account.", model.CatalogKindIPs)
}

// NewDocCommand returns the doc command.
func NewDocCommand(rootCmd *RootCommand, app *kingpin.Application) *CatalogCommand {
	c := newCatalogCommand(rootCmd, app, "Show the API documentation.", model.CatalogKindDoc)
	c.Cmd.Arg("subject", "Documentation subject (e.g. jiffyBoxes).").StringVar(&c.sub)
	return c
}

func (c CatalogCommand) Name() string { return c.Cmd.FullCommand() }

func (c CatalogCommand) Run(ctx context.Context) error {
	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	svc, err := catalog.NewService(catalog.ServiceConfig{
		Provider: prov,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, catalog.Request{Kind: c.kind, Sub: c.sub})
	if err != nil {
		return fmt.Errorf("could not get %s: %w", c.kind, err)
	}
	c.rootCmd.printMessages(resp.Messages)

	p := c.rootCmd.printer()
	switch c.kind {
	case model.CatalogKindPlans:
		err = p.PrintPlans(resp.Plans)
	case model.CatalogKindDistributions:
		err = p.PrintDistributions(resp.Distributions)
	default:
		err = p.PrintRaw(resp.Raw)
	}
	if err != nil {
		return fmt.Errorf("could not print %s: %w", c.kind, err)
	}

	return nil
}
