package printer_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/printer"
)

func boxFixture() model.Box {
	return model.Box{
		ID:         12,
		Name:       "web-1",
		Status:     model.BoxStatusReady,
		Running:    true,
		Host:       "host-3",
		Created:    time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC),
		Plan:       model.Plan{ID: 10, Name: "CloudLevel 1", CPUs: 2, RAMMB: 2048, DiskSizeMB: 81920},
		PublicIPs:  []string{"198.51.100.2"},
		PrivateIPs: []string{"10.0.0.2"},
	}
}

func TestTablePrinterPrintBox(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf, false)

	err := p.PrintBox(boxFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID:         12")
	assert.Contains(t, out, "Status:     READY")
	assert.Contains(t, out, "Plan:       CloudLevel 1 (10)")
	assert.Contains(t, out, "Memory:     2 GB")
	assert.Contains(t, out, "Disk:       80 GB")
	assert.Contains(t, out, "Created:    2026-01-30 10:00:00 UTC")
}

func TestTablePrinterColoredStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf, true)

	err := p.PrintBoxes([]model.Box{boxFixture()})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b[32mREADY\x1b[0m")

	buf.Reset()
	p = printer.NewTablePrinter(&buf, false)
	err = p.PrintBoxes([]model.Box{boxFixture()})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTablePrinterPrintTransition(t *testing.T) {
	tests := map[string]struct {
		out model.TransitionOutcome
		exp string
	}{
		"An applied transition should say it was sent.": {
			out: model.TransitionOutcome{State: model.TransitionApplied, Command: model.StatusCommandFreeze, Observed: model.BoxStatusReady},
			exp: "FREEZE sent to box 12 (was READY)\n",
		},

		"A rejected transition should print the reason.": {
			out: model.TransitionOutcome{State: model.TransitionRejected, Command: model.StatusCommandThaw, Reason: "THAW needs status FROZEN"},
			exp: "THAW not sent to box 12: THAW needs status FROZEN\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			p := printer.NewTablePrinter(&buf, false)

			require.NoError(t, p.PrintTransition(12, test.out))
			assert.Equal(t, test.exp, buf.String())
		})
	}
}

func TestTablePrinterPrintBackups(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf, false)

	err := p.PrintBackups(12, model.BoxBackups{Daily: &model.Backup{ID: "d1", Created: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "d1")
	assert.Contains(t, out, "2026-01-30 00:00:00 UTC")
	assert.Regexp(t, `weekly\s+-\s+-`, out)
}

func TestTablePrinterPrintJournal(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf, false)

	id := 12
	err := p.PrintJournal([]model.JournalEntry{
		{ID: "01A", BoxID: &id, Operation: "freeze", Outcome: model.JournalOutcomeApplied, Messages: []string{"a", "b"}},
		{ID: "01B", Operation: "create", Outcome: model.JournalOutcomeFailed, Error: "transport failure"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a; b")
	assert.Contains(t, out, "transport failure")
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf, false)

	err := p.PrintMessage("Box created")
	require.NoError(t, err)
	assert.Equal(t, "Box created\n", buf.String())
}

func TestJSONPrinterPrintBox(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintBox(boxFixture())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(12), got["id"])
	assert.Equal(t, "READY", got["status"])
	assert.Equal(t, "2026-01-30T10:00:00Z", got["created_at"])
	assert.Equal(t, "CloudLevel 1", got["plan"].(map[string]any)["name"])
}

func TestJSONPrinterPrintTransition(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTransition(12, model.TransitionOutcome{
		State:    model.TransitionRejected,
		Command:  model.StatusCommandFreeze,
		Observed: model.BoxStatusFrozen,
		Reason:   "FREEZE needs status READY",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"box_id": 12,
		"command": "FREEZE",
		"state": "rejected",
		"observed_status": "FROZEN",
		"reason": "FREEZE needs status READY",
		"messages": []
	}`, buf.String())
}

func TestPrintRaw(t *testing.T) {
	tests := map[string]struct {
		printer func(buf *bytes.Buffer) printer.Printer
	}{
		"Table printer.": {printer: func(buf *bytes.Buffer) printer.Printer { return printer.NewTablePrinter(buf, false) }},
		"JSON printer.":  {printer: func(buf *bytes.Buffer) printer.Printer { return printer.NewJSONPrinter(buf) }},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			p := test.printer(&buf)

			require.NoError(t, p.PrintRaw(json.RawMessage(`{"a":[1,2]}`)))
			assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", buf.String())
		})
	}
}
