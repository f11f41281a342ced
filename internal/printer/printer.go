package printer

import (
	"encoding/json"

	"github.com/slok/jiffybox/internal/model"
)

// Printer knows how to print box information in different formats.
type Printer interface {
	PrintBoxes(boxes []model.Box) error
	PrintBox(box model.Box) error
	PrintTransition(boxID int, out model.TransitionOutcome) error
	PrintBackups(boxID int, backups model.BoxBackups) error
	PrintPlans(plans []model.Plan) error
	PrintDistributions(dists []model.Distribution) error
	PrintRaw(raw json.RawMessage) error
	PrintJournal(entries []model.JournalEntry) error
	PrintMessage(msg string) error
}
