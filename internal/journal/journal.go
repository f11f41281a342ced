package journal

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/storage"
)

// Event is an operation to record in the journal.
type Event struct {
	Operation string
	BoxID     *int
	Outcome   model.JournalOutcome
	Messages  []string
	Err       error
}

// Applied returns the event of an operation the provider accepted.
func Applied(op string, boxID *int, messages []string) Event {
	return Event{Operation: op, BoxID: boxID, Outcome: model.JournalOutcomeApplied, Messages: messages}
}

// Rejected returns the event of a transition that was not sent.
func Rejected(op string, boxID *int, reason string) Event {
	return Event{Operation: op, BoxID: boxID, Outcome: model.JournalOutcomeRejected, Messages: []string{reason}}
}

// Failed returns the event of an operation that ended with an error.
func Failed(op string, boxID *int, err error) Event {
	return Event{Operation: op, BoxID: boxID, Outcome: model.JournalOutcomeFailed, Err: err}
}

// Recorder records operation events.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Noop is a Recorder that doesn't record anything.
var Noop Recorder = noop(0)

type noop int

func (noop) Record(context.Context, Event) {}

// RecorderConfig is the configuration of the journal recorder.
type RecorderConfig struct {
	Repository storage.JournalRepository
	TimeNow    func() time.Time
	Logger     log.Logger
}

func (c *RecorderConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.TimeNow == nil {
		c.TimeNow = func() time.Time { return time.Now().UTC() }
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "journal.Recorder"})

	return nil
}

type recorder struct {
	repo    storage.JournalRepository
	entropy io.Reader
	timeNow func() time.Time
	logger  log.Logger
}

// NewRecorder returns a recorder that stores events in a journal repository.
// Storing errors are logged, they never fail the recorded operation.
func NewRecorder(cfg RecorderConfig) (Recorder, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Entries of the same millisecond must keep their order.
	entropy := &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.Reader, 0)}

	return &recorder{
		repo:    cfg.Repository,
		entropy: entropy,
		timeNow: cfg.TimeNow,
		logger:  cfg.Logger,
	}, nil
}

func (r *recorder) Record(ctx context.Context, e Event) {
	now := r.timeNow()

	entry := model.JournalEntry{
		ID:        ulid.MustNew(ulid.Timestamp(now), r.entropy).String(),
		BoxID:     e.BoxID,
		Operation: e.Operation,
		Outcome:   e.Outcome,
		Messages:  e.Messages,
		CreatedAt: now,
	}
	if entry.Messages == nil {
		entry.Messages = []string{}
	}
	if e.Err != nil {
		entry.Error = e.Err.Error()
	}

	if err := r.repo.AddEntry(ctx, entry); err != nil {
		r.logger.Warningf("Could not record %s in journal: %s", e.Operation, err)
		return
	}
	r.logger.Debugf("Recorded %s (%s) in journal", e.Operation, e.Outcome)
}
