package model

import "time"

// JournalOutcome is how an operation ended.
type JournalOutcome string

const (
	JournalOutcomeApplied  JournalOutcome = "applied"
	JournalOutcomeRejected JournalOutcome = "rejected"
	JournalOutcomeFailed   JournalOutcome = "failed"
)

// JournalEntry is a local record of an operation executed against the provider.
type JournalEntry struct {
	ID        string
	BoxID     *int
	Operation string
	Outcome   JournalOutcome
	Messages  []string
	Error     string
	CreatedAt time.Time
}

// JournalQuery filters journal listings.
type JournalQuery struct {
	// BoxID when set only returns entries of that box.
	BoxID *int
	// Limit when positive caps the number of (newest) entries.
	Limit int
}
