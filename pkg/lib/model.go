package lib

import (
	"time"

	"github.com/slok/jiffybox/internal/model"
)

// BoxStatus is the status of a box as reported by the provider.
//
// Only [BoxStatusReady] and [BoxStatusFrozen] allow lifecycle commands, any
// other value (e.g. a transitional status) is kept verbatim.
type BoxStatus string

const (
	// BoxStatusReady indicates the box is settled, it can be frozen, started,
	// shut down or unplugged.
	BoxStatusReady BoxStatus = "READY"
	// BoxStatusFrozen indicates the box is frozen, it can only be thawed.
	BoxStatusFrozen BoxStatus = "FROZEN"
)

// StatusCommand is a lifecycle command sent to a box.
type StatusCommand string

const (
	StatusCommandFreeze   StatusCommand = "FREEZE"
	StatusCommandStart    StatusCommand = "START"
	StatusCommandShutdown StatusCommand = "SHUTDOWN"
	StatusCommandPullPlug StatusCommand = "PULLPLUG"
	StatusCommandThaw     StatusCommand = "THAW"
)

// Box represents a box returned by the SDK.
//
// This is a read-only snapshot of the box at the time of the API call.
type Box struct {
	ID      int
	Name    string
	Status  BoxStatus
	Running bool
	// Host is the physical host the box lives on.
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

// Plan is a box sizing and pricing plan.
type Plan struct {
	ID                 int
	Name               string
	CPUs               int
	RAMMB              int
	DiskSizeMB         int
	PricePerHour       float64
	PricePerHourFrozen float64
}

// Distribution is an installable operating system.
type Distribution struct {
	// Key is the identifier used when creating a box.
	Key           string
	Name          string
	MinDiskSizeMB int
	DefaultKernel string
	RootDiskMode  string
}

// Backup is a single backup of a box.
type Backup struct {
	ID      string
	Created time.Time
}

// BoxBackups are the backup slots of a box. Nil slots have no backup.
type BoxBackups struct {
	Daily    *Backup
	Weekly   *Backup
	Biweekly *Backup
}

// CreateBoxOpts configures the creation of a box.
//
// Nil optional fields are not sent, the provider applies its defaults.
type CreateBoxOpts struct {
	// Name is the box name (required). Names must be unique unless
	// AllowDuplicateName is set.
	Name string
	// PlanID is the plan of the box (required).
	PlanID int
	// BackupID creates the box from a backup instead of a distribution.
	BackupID     *int
	Distribution *string
	// Password is the root password.
	Password *string
	// UseSSHKey installs the account SSH key on the box.
	UseSSHKey *bool
	Metadata  map[string]any
	// AllowDuplicateName skips the name uniqueness check.
	AllowDuplicateName bool
}

// CloneBoxOpts configures the clone of a box.
type CloneBoxOpts struct {
	Name   string
	PlanID int
}

// ListBoxesOpts configures listing behavior.
type ListBoxesOpts struct {
	// Status filters by box status. Nil returns all.
	Status *BoxStatus
	// Running filters by the running flag. Nil returns all.
	Running *bool
}

// Result is the value of a call plus the informational messages the provider
// sent with it.
type Result[T any] struct {
	Value    T
	Messages []string
}

// TransitionState is how a lifecycle command ended when it didn't fail.
type TransitionState string

const (
	// TransitionApplied means the command was sent to the provider.
	TransitionApplied TransitionState = "applied"
	// TransitionRejected means the box status didn't allow the command, nothing was sent.
	TransitionRejected TransitionState = "rejected"
)

// TransitionOutcome is the result of a lifecycle command.
//
// A rejection is not an error: the box status was checked and didn't allow the
// command, Reason explains why.
type TransitionOutcome struct {
	State    TransitionState
	Command  StatusCommand
	Observed BoxStatus
	Reason   string
	// Box is the record returned by the provider on applied transitions, it can be nil.
	Box      *Box
	Messages []string
}

// Applied returns true if the command reached the provider.
func (o TransitionOutcome) Applied() bool { return o.State == TransitionApplied }

// JournalOutcome is how a recorded operation ended.
type JournalOutcome string

const (
	JournalOutcomeApplied  JournalOutcome = "applied"
	JournalOutcomeRejected JournalOutcome = "rejected"
	JournalOutcomeFailed   JournalOutcome = "failed"
)

// JournalEntry is a recorded operation.
type JournalEntry struct {
	// ID is a ULID, sortable by creation time.
	ID        string
	BoxID     *int
	Operation string
	Outcome   JournalOutcome
	Messages  []string
	Error     string
	CreatedAt time.Time
}

// HistoryOpts configures the journal listing.
type HistoryOpts struct {
	// NameOrID filters by box, empty returns every entry.
	NameOrID string
	// Limit caps the number of entries, 0 returns all.
	Limit int
}

// --- Conversion helpers ---

func toInternalBoxSpec(opts CreateBoxOpts) model.BoxSpec {
	return model.BoxSpec{
		Name:         opts.Name,
		PlanID:       opts.PlanID,
		BackupID:     opts.BackupID,
		Distribution: opts.Distribution,
		Password:     opts.Password,
		UseSSHKey:    opts.UseSSHKey,
		Metadata:     opts.Metadata,
	}
}

func fromInternalBox(b model.Box) Box {
	return Box{
		ID:                  b.ID,
		Name:                b.Name,
		Status:              BoxStatus(b.Status),
		Running:             b.Running,
		Host:                b.Host,
		Created:             b.Created,
		Plan:                fromInternalPlan(b.Plan),
		PublicIPs:           b.PublicIPs,
		PrivateIPs:          b.PrivateIPs,
		RecoveryModeActive:  b.RecoveryModeActive,
		ManualBackupRunning: b.ManualBackupRunning,
		IsBeingCopied:       b.IsBeingCopied,
		Metadata:            b.Metadata,
	}
}

func fromInternalBoxList(bs []model.Box) []Box {
	result := make([]Box, len(bs))
	for i, b := range bs {
		result[i] = fromInternalBox(b)
	}
	return result
}

func fromInternalPlan(p model.Plan) Plan {
	return Plan{
		ID:                 p.ID,
		Name:               p.Name,
		CPUs:               p.CPUs,
		RAMMB:              p.RAMMB,
		DiskSizeMB:         p.DiskSizeMB,
		PricePerHour:       p.PricePerHour,
		PricePerHourFrozen: p.PricePerHourFrozen,
	}
}

func fromInternalPlanList(ps []model.Plan) []Plan {
	result := make([]Plan, len(ps))
	for i, p := range ps {
		result[i] = fromInternalPlan(p)
	}
	return result
}

func fromInternalDistributionList(ds []model.Distribution) []Distribution {
	result := make([]Distribution, len(ds))
	for i, d := range ds {
		result[i] = Distribution{
			Key:           d.Key,
			Name:          d.Name,
			MinDiskSizeMB: d.MinDiskSizeMB,
			DefaultKernel: d.DefaultKernel,
			RootDiskMode:  d.RootDiskMode,
		}
	}
	return result
}

func fromInternalBackup(b *model.Backup) *Backup {
	if b == nil {
		return nil
	}
	return &Backup{ID: b.ID, Created: b.Created}
}

func fromInternalBackups(b *model.BoxBackups) BoxBackups {
	if b == nil {
		return BoxBackups{}
	}
	return BoxBackups{
		Daily:    fromInternalBackup(b.Daily),
		Weekly:   fromInternalBackup(b.Weekly),
		Biweekly: fromInternalBackup(b.Biweekly),
	}
}

func fromInternalTransitionOutcome(o model.TransitionOutcome) TransitionOutcome {
	out := TransitionOutcome{
		State:    TransitionState(o.State),
		Command:  StatusCommand(o.Command),
		Observed: BoxStatus(o.Observed),
		Reason:   o.Reason,
		Messages: o.Messages,
	}
	if o.Box != nil {
		b := fromInternalBox(*o.Box)
		out.Box = &b
	}
	return out
}

func fromInternalJournalEntryList(es []model.JournalEntry) []JournalEntry {
	result := make([]JournalEntry, len(es))
	for i, e := range es {
		result[i] = JournalEntry{
			ID:        e.ID,
			BoxID:     e.BoxID,
			Operation: e.Operation,
			Outcome:   JournalOutcome(e.Outcome),
			Messages:  e.Messages,
			Error:     e.Error,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}
