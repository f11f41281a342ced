package lib

import (
	"context"
	"fmt"

	"github.com/slok/jiffybox/internal/app/history"
)

// History returns the recorded operations, newest first.
//
// Requires [Config].JournalPath, otherwise [ErrNotValid] is returned.
// Pass nil opts to list every entry.
func (c *Client) History(ctx context.Context, opts *HistoryOpts) ([]JournalEntry, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("journal is not enabled: %w", ErrNotValid)
	}

	svc, err := history.NewService(history.ServiceConfig{
		Repository: c.repo,
		Provider:   c.provider,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := history.Request{}
	if opts != nil {
		req.NameOrID = opts.NameOrID
		req.Limit = opts.Limit
	}

	entries, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalJournalEntryList(entries), nil
}
