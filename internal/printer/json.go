package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/slok/jiffybox/internal/model"
)

// JSONPrinter prints box information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type planOutput struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	CPUs               int     `json:"cpus"`
	RAMMB              int     `json:"ram_mb"`
	DiskSizeMB         int     `json:"disk_size_mb"`
	PricePerHour       float64 `json:"price_per_hour"`
	PricePerHourFrozen float64 `json:"price_per_hour_frozen"`
}

type boxOutput struct {
	ID                  int            `json:"id"`
	Name                string         `json:"name"`
	Status              string         `json:"status"`
	Running             bool           `json:"running"`
	Host                string         `json:"host,omitempty"`
	Plan                *planOutput    `json:"plan,omitempty"`
	PublicIPs           []string       `json:"public_ips"`
	PrivateIPs          []string       `json:"private_ips"`
	RecoveryModeActive  bool           `json:"recovery_mode_active"`
	ManualBackupRunning bool           `json:"manual_backup_running"`
	IsBeingCopied       bool           `json:"is_being_copied"`
	Metadata            map[string]any `json:"metadata,omitempty"`
	CreatedAt           *time.Time     `json:"created_at"`
}

type transitionOutput struct {
	BoxID    int      `json:"box_id"`
	Command  string   `json:"command"`
	State    string   `json:"state"`
	Observed string   `json:"observed_status"`
	Reason   string   `json:"reason,omitempty"`
	Messages []string `json:"messages"`
}

type backupOutput struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type backupsOutput struct {
	BoxID    int           `json:"box_id"`
	Daily    *backupOutput `json:"daily"`
	Weekly   *backupOutput `json:"weekly"`
	Biweekly *backupOutput `json:"biweekly"`
}

type distributionOutput struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	MinDiskSizeMB int    `json:"min_disk_size_mb"`
	DefaultKernel string `json:"default_kernel"`
	RootDiskMode  string `json:"root_disk_mode"`
}

type journalOutput struct {
	ID        string    `json:"id"`
	BoxID     *int      `json:"box_id"`
	Operation string    `json:"operation"`
	Outcome   string    `json:"outcome"`
	Messages  []string  `json:"messages"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func toBoxOutput(b model.Box) boxOutput {
	out := boxOutput{
		ID:                  b.ID,
		Name:                b.Name,
		Status:              string(b.Status),
		Running:             b.Running,
		Host:                b.Host,
		PublicIPs:           nonNil(b.PublicIPs),
		PrivateIPs:          nonNil(b.PrivateIPs),
		RecoveryModeActive:  b.RecoveryModeActive,
		ManualBackupRunning: b.ManualBackupRunning,
		IsBeingCopied:       b.IsBeingCopied,
		Metadata:            b.Metadata,
	}
	if b.Plan.ID != 0 {
		p := toPlanOutput(b.Plan)
		out.Plan = &p
	}
	if !b.Created.IsZero() {
		t := b.Created.UTC()
		out.CreatedAt = &t
	}
	return out
}

func toPlanOutput(p model.Plan) planOutput {
	return planOutput{
		ID:                 p.ID,
		Name:               p.Name,
		CPUs:               p.CPUs,
		RAMMB:              p.RAMMB,
		DiskSizeMB:         p.DiskSizeMB,
		PricePerHour:       p.PricePerHour,
		PricePerHourFrozen: p.PricePerHourFrozen,
	}
}

func toBackupOutput(b *model.Backup) *backupOutput {
	if b == nil {
		return nil
	}
	return &backupOutput{ID: b.ID, CreatedAt: b.Created.UTC()}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintBoxes prints boxes in JSON format.
func (j *JSONPrinter) PrintBoxes(boxes []model.Box) error {
	items := make([]boxOutput, len(boxes))
	for i, b := range boxes {
		items[i] = toBoxOutput(b)
	}
	return j.encode(items)
}

// PrintBox prints a box in JSON format.
func (j *JSONPrinter) PrintBox(b model.Box) error {
	return j.encode(toBoxOutput(b))
}

// PrintTransition prints the outcome of a status command in JSON format.
func (j *JSONPrinter) PrintTransition(boxID int, out model.TransitionOutcome) error {
	return j.encode(transitionOutput{
		BoxID:    boxID,
		Command:  string(out.Command),
		State:    string(out.State),
		Observed: string(out.Observed),
		Reason:   out.Reason,
		Messages: nonNil(out.Messages),
	})
}

// PrintBackups prints the backups of a box in JSON format.
func (j *JSONPrinter) PrintBackups(boxID int, backups model.BoxBackups) error {
	return j.encode(backupsOutput{
		BoxID:    boxID,
		Daily:    toBackupOutput(backups.Daily),
		Weekly:   toBackupOutput(backups.Weekly),
		Biweekly: toBackupOutput(backups.Biweekly),
	})
}

// PrintPlans prints plans in JSON format.
func (j *JSONPrinter) PrintPlans(plans []model.Plan) error {
	items := make([]planOutput, len(plans))
	for i, p := range plans {
		items[i] = toPlanOutput(p)
	}
	return j.encode(items)
}

// PrintDistributions prints distributions in JSON format.
func (j *JSONPrinter) PrintDistributions(dists []model.Distribution) error {
	items := make([]distributionOutput, len(dists))
	for i, d := range dists {
		items[i] = distributionOutput{
			Key:           d.Key,
			Name:          d.Name,
			MinDiskSizeMB: d.MinDiskSizeMB,
			DefaultKernel: d.DefaultKernel,
			RootDiskMode:  d.RootDiskMode,
		}
	}
	return j.encode(items)
}

// PrintRaw prints an opaque result as indented JSON.
func (j *JSONPrinter) PrintRaw(raw json.RawMessage) error {
	return printIndentedJSON(j.writer, raw)
}

// PrintJournal prints journal entries in JSON format.
func (j *JSONPrinter) PrintJournal(entries []model.JournalEntry) error {
	items := make([]journalOutput, len(entries))
	for i, e := range entries {
		items[i] = journalOutput{
			ID:        e.ID,
			BoxID:     e.BoxID,
			Operation: e.Operation,
			Outcome:   string(e.Outcome),
			Messages:  nonNil(e.Messages),
			Error:     e.Error,
			CreatedAt: e.CreatedAt.UTC(),
		}
	}
	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func printIndentedJSON(w io.Writer, raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("null")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("could not indent json: %w", err)
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}
