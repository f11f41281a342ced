package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/slok/jiffybox/internal/model"
)

// TablePrinter prints box information in a table format.
type TablePrinter struct {
	writer io.Writer
	ready  *color.Color
	frozen *color.Color
	other  *color.Color
}

// NewTablePrinter creates a new table printer, colored sets if statuses are colored.
func NewTablePrinter(w io.Writer, colored bool) *TablePrinter {
	p := &TablePrinter{
		writer: w,
		ready:  color.New(color.FgGreen),
		frozen: color.New(color.FgCyan),
		other:  color.New(color.FgYellow),
	}

	for _, c := range []*color.Color{p.ready, p.frozen, p.other} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (t *TablePrinter) status(st model.BoxStatus) string {
	switch st {
	case model.BoxStatusReady:
		return t.ready.Sprint(st)
	case model.BoxStatusFrozen:
		return t.frozen.Sprint(st)
	default:
		return t.other.Sprint(st)
	}
}

// PrintBoxes prints boxes in a table format.
func (t *TablePrinter) PrintBoxes(boxes []model.Box) error {
	if len(boxes) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tRUNNING\tPLAN\tIP\tCREATED")
	for _, b := range boxes {
		ip := "-"
		if len(b.PublicIPs) > 0 {
			ip = b.PublicIPs[0]
		}
		plan := b.Plan.Name
		if plan == "" {
			plan = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%s\t%s\n", b.ID, b.Name, t.status(b.Status), b.Running, plan, ip, TimeAgo(b.Created))
	}

	return nil
}

// PrintBox prints detailed box status.
func (t *TablePrinter) PrintBox(b model.Box) error {
	fmt.Fprintf(t.writer, "Name:       %s\n", b.Name)
	fmt.Fprintf(t.writer, "ID:         %d\n", b.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", t.status(b.Status))
	fmt.Fprintf(t.writer, "Running:    %t\n", b.Running)
	if b.Host != "" {
		fmt.Fprintf(t.writer, "Host:       %s\n", b.Host)
	}
	if b.Plan.ID != 0 {
		fmt.Fprintf(t.writer, "Plan:       %s (%d)\n", b.Plan.Name, b.Plan.ID)
		fmt.Fprintf(t.writer, "CPUs:       %d\n", b.Plan.CPUs)
		fmt.Fprintf(t.writer, "Memory:     %s\n", FormatMB(b.Plan.RAMMB))
		fmt.Fprintf(t.writer, "Disk:       %s\n", FormatMB(b.Plan.DiskSizeMB))
	}
	if len(b.PublicIPs) > 0 {
		fmt.Fprintf(t.writer, "Public IPs: %s\n", strings.Join(b.PublicIPs, ", "))
	}
	if len(b.PrivateIPs) > 0 {
		fmt.Fprintf(t.writer, "Private IPs: %s\n", strings.Join(b.PrivateIPs, ", "))
	}
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(b.Created))

	if b.RecoveryModeActive {
		fmt.Fprintf(t.writer, "Recovery:   active\n")
	}
	if b.ManualBackupRunning {
		fmt.Fprintf(t.writer, "Backup:     running\n")
	}
	if b.IsBeingCopied {
		fmt.Fprintf(t.writer, "Copying:    yes\n")
	}

	return nil
}

// PrintTransition prints the outcome of a status command.
func (t *TablePrinter) PrintTransition(boxID int, out model.TransitionOutcome) error {
	if !out.Applied() {
		fmt.Fprintf(t.writer, "%s not sent to box %d: %s\n", out.Command, boxID, out.Reason)
		return nil
	}

	fmt.Fprintf(t.writer, "%s sent to box %d (was %s)\n", out.Command, boxID, t.status(out.Observed))
	return nil
}

// PrintBackups prints the backup slots of a box.
func (t *TablePrinter) PrintBackups(boxID int, backups model.BoxBackups) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SLOT\tID\tCREATED")
	slots := []struct {
		name   string
		backup *model.Backup
	}{
		{"daily", backups.Daily},
		{"weekly", backups.Weekly},
		{"biweekly", backups.Biweekly},
	}
	for _, s := range slots {
		if s.backup == nil {
			fmt.Fprintf(tw, "%s\t-\t-\n", s.name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.name, s.backup.ID, FormatTimestamp(s.backup.Created))
	}

	return nil
}

// PrintPlans prints plans in a table format.
func (t *TablePrinter) PrintPlans(plans []model.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tCPUS\tRAM\tDISK\tPRICE\tFROZEN PRICE")
	for _, p := range plans {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.CPUs, FormatMB(p.RAMMB), FormatMB(p.DiskSizeMB), FormatPrice(p.PricePerHour), FormatPrice(p.PricePerHourFrozen))
	}

	return nil
}

// PrintDistributions prints distributions in a table format.
func (t *TablePrinter) PrintDistributions(dists []model.Distribution) error {
	if len(dists) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "KEY\tNAME\tMIN DISK\tKERNEL")
	for _, d := range dists {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Key, d.Name, FormatMB(d.MinDiskSizeMB), d.DefaultKernel)
	}

	return nil
}

// PrintRaw prints an opaque result as indented JSON, tables can't know its shape.
func (t *TablePrinter) PrintRaw(raw json.RawMessage) error {
	return printIndentedJSON(t.writer, raw)
}

// PrintJournal prints journal entries in a table format.
func (t *TablePrinter) PrintJournal(entries []model.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "TIME\tBOX\tOPERATION\tOUTCOME\tDETAILS")
	for _, e := range entries {
		box := "-"
		if e.BoxID != nil {
			box = fmt.Sprint(*e.BoxID)
		}
		details := e.Error
		if details == "" {
			details = strings.Join(e.Messages, "; ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", FormatTimestamp(e.CreatedAt), box, e.Operation, e.Outcome, details)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
