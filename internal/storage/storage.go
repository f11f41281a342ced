package storage

import (
	"context"

	"github.com/slok/jiffybox/internal/model"
)

// JournalRepository is the interface for the local operation journal persistence.
type JournalRepository interface {
	AddEntry(ctx context.Context, e model.JournalEntry) error
	// ListEntries returns the entries matching the query, newest first.
	ListEntries(ctx context.Context, q model.JournalQuery) ([]model.JournalEntry, error)
}
