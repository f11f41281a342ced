package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/jiffybox/internal/model"
)

// BoxSpecYAMLRepository loads box specs from YAML files.
type BoxSpecYAMLRepository struct {
	fs fs.FS
}

// NewBoxSpecYAMLRepository creates a new YAML box spec repository.
func NewBoxSpecYAMLRepository(filesystem fs.FS) *BoxSpecYAMLRepository {
	return &BoxSpecYAMLRepository{fs: filesystem}
}

// GetBoxSpec loads a box spec from a YAML file and returns a validated domain model.
func (r *BoxSpecYAMLRepository) GetBoxSpec(ctx context.Context, path string) (model.BoxSpec, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.BoxSpec{}, fmt.Errorf("reading box spec file: %w", err)
	}

	if ctx.Err() != nil {
		return model.BoxSpec{}, ctx.Err()
	}

	var spec BoxSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return model.BoxSpec{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m := spec.toModel()
	if err := m.Validate(); err != nil {
		return model.BoxSpec{}, fmt.Errorf("invalid box spec: %w", err)
	}

	return m, nil
}

// BoxSpec represents the YAML structure of a box spec.
type BoxSpec struct {
	Name         string         `yaml:"name"`
	PlanID       int            `yaml:"plan_id"`
	BackupID     *int           `yaml:"backup_id,omitempty"`
	Distribution *string        `yaml:"distribution,omitempty"`
	Password     *string        `yaml:"password,omitempty"`
	UseSSHKey    *bool          `yaml:"use_ssh_key,omitempty"`
	Metadata     map[string]any `yaml:"metadata,omitempty"`
}

func (s BoxSpec) toModel() model.BoxSpec {
	return model.BoxSpec{
		Name:         s.Name,
		PlanID:       s.PlanID,
		BackupID:     s.BackupID,
		Distribution: s.Distribution,
		Password:     s.Password,
		UseSSHKey:    s.UseSSHKey,
		Metadata:     s.Metadata,
	}
}
