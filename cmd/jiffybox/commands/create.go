package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jiffybox/internal/app/create"
	"github.com/slok/jiffybox/internal/model"
	storageio "github.com/slok/jiffybox/internal/storage/io"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file               string
	name               string
	planID             int
	backupID           int
	distribution       string
	password           string
	useSSHKey          bool
	metadata           map[string]string
	allowDuplicateName bool

	setByUser map[string]*bool
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{
		rootCmd:   rootCmd,
		metadata:  map[string]string{},
		setByUser: map[string]*bool{},
	}

	c.Cmd = app.Command("create", "Create a new box.")
	c.Cmd.Flag("file", "YAML box spec file, flags override its values.").Short('f').StringVar(&c.file)
	c.flag("name", "Name for the box.").Short('n').StringVar(&c.name)
	c.flag("plan-id", "Plan of the box.").IntVar(&c.planID)
	c.flag("backup-id", "Create the box from this backup.").IntVar(&c.backupID)
	c.flag("distribution", "Distribution to install (see the distributions command).").StringVar(&c.distribution)
	c.flag("password", "Root password.").StringVar(&c.password)
	c.flag("use-ssh-key", "Install the account SSH key.").BoolVar(&c.useSSHKey)
	c.flag("metadata", "Metadata entry (KEY=VALUE), can be repeated.").StringMapVar(&c.metadata)
	c.Cmd.Flag("allow-duplicate-name", "Allow creating a box with a name already in use.").BoolVar(&c.allowDuplicateName)

	return c
}

func (c *CreateCommand) flag(name, help string) *kingpin.FlagClause {
	set := new(bool)
	c.setByUser[name] = set
	return c.Cmd.Flag(name, help).IsSetByUser(set)
}

func (c *CreateCommand) isSet(name string) bool { return *c.setByUser[name] }

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	spec, err := c.boxSpec(ctx)
	if err != nil {
		return err
	}

	prov, err := c.rootCmd.newProvider()
	if err != nil {
		return fmt.Errorf("could not create provider: %w", err)
	}

	rec, closeJournal, err := c.rootCmd.newJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	svc, err := create.NewService(create.ServiceConfig{
		Provider: prov,
		Journal:  rec,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, create.Request{
		Spec:               spec,
		AllowDuplicateName: c.allowDuplicateName,
	})
	if err != nil {
		return fmt.Errorf("could not create box: %w", err)
	}
	c.rootCmd.printMessages(res.Messages)

	if err := c.rootCmd.printer().PrintBox(*res.Value); err != nil {
		return fmt.Errorf("could not print box: %w", err)
	}

	return nil
}

// boxSpec merges the --file YAML (if any) with the flags set by the user.
func (c CreateCommand) boxSpec(ctx context.Context) (model.BoxSpec, error) {
	spec := model.BoxSpec{}
	if c.file != "" {
		abs, err := filepath.Abs(c.file)
		if err != nil {
			return spec, fmt.Errorf("invalid spec file path: %w", err)
		}

		repo := storageio.NewBoxSpecYAMLRepository(os.DirFS(filepath.Dir(abs)))
		spec, err = repo.GetBoxSpec(ctx, filepath.Base(abs))
		if err != nil {
			return spec, fmt.Errorf("could not load box spec: %w", err)
		}
	}

	if c.isSet("name") {
		spec.Name = c.name
	}
	if c.isSet("plan-id") {
		spec.PlanID = c.planID
	}
	if c.isSet("backup-id") {
		spec.BackupID = &c.backupID
	}
	if c.isSet("distribution") {
		spec.Distribution = &c.distribution
	}
	if c.isSet("password") {
		spec.Password = &c.password
	}
	if c.isSet("use-ssh-key") {
		spec.UseSSHKey = &c.useSSHKey
	}
	if c.isSet("metadata") {
		if spec.Metadata == nil {
			spec.Metadata = map[string]any{}
		}
		for k, v := range c.metadata {
			spec.Metadata[k] = v
		}
	}

	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("invalid box spec: %w", err)
	}

	return spec, nil
}
