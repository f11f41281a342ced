package model

import (
	"fmt"
	"time"
)

// BoxStatus is the status of a box as observed from the provider.
//
// Only READY and FROZEN take part in the lifecycle rules, any other value the
// provider reports (e.g. mid transition states) is kept verbatim.
type BoxStatus string

const (
	// BoxStatusReady indicates the box is settled and accepts most lifecycle commands.
	BoxStatusReady BoxStatus = "READY"
	// BoxStatusFrozen indicates the box is frozen, only a thaw is accepted.
	BoxStatusFrozen BoxStatus = "FROZEN"
)

// StatusCommand is a write side status value sent to change the state of a box.
type StatusCommand string

const (
	StatusCommandFreeze   StatusCommand = "FREEZE"
	StatusCommandStart    StatusCommand = "START"
	StatusCommandShutdown StatusCommand = "SHUTDOWN"
	StatusCommandPullPlug StatusCommand = "PULLPLUG"
	StatusCommandThaw     StatusCommand = "THAW"
)

// Validate checks the command is one of the known commands.
func (c StatusCommand) Validate() error {
	switch c {
	case StatusCommandFreeze, StatusCommandStart, StatusCommandShutdown, StatusCommandPullPlug, StatusCommandThaw:
		return nil
	}
	return fmt.Errorf("unknown status command %q: %w", c, ErrNotValid)
}

// Box is a provisioned virtual machine as reported by the provider.
type Box struct {
	ID                  int
	Name                string
	Status              BoxStatus
	Running             bool
	Host                string
	Created             time.Time
	Plan                Plan
	PublicIPs           []string
	PrivateIPs          []string
	RecoveryModeActive  bool
	ManualBackupRunning bool
	IsBeingCopied       bool
	Metadata            map[string]any
}

// BoxSpec is the configuration used to create a new box.
//
// Optional fields left nil are not sent to the provider at all, so the provider
// applies its own defaults.
type BoxSpec struct {
	Name         string
	PlanID       int
	BackupID     *int
	Distribution *string
	Password     *string
	UseSSHKey    *bool
	Metadata     map[string]any
}

// Validate validates the box spec.
func (s BoxSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if s.PlanID <= 0 {
		return fmt.Errorf("plan id must be positive: %w", ErrNotValid)
	}
	if s.BackupID != nil && *s.BackupID <= 0 {
		return fmt.Errorf("backup id must be positive: %w", ErrNotValid)
	}
	if s.Distribution != nil && *s.Distribution == "" {
		return fmt.Errorf("distribution can't be empty: %w", ErrNotValid)
	}
	return nil
}

// Backup is a single backup of a box.
type Backup struct {
	ID      string
	Created time.Time
}

// BoxBackups are the backup slots of a box, nil slots have no backup.
type BoxBackups struct {
	Daily    *Backup
	Weekly   *Backup
	Biweekly *Backup
}
