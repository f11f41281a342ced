package lib

import (
	"context"
	"fmt"

	"github.com/slok/jiffybox/internal/app/backups"
	"github.com/slok/jiffybox/internal/app/clone"
	"github.com/slok/jiffybox/internal/app/create"
	"github.com/slok/jiffybox/internal/app/lifecycle"
	"github.com/slok/jiffybox/internal/app/list"
	"github.com/slok/jiffybox/internal/app/remove"
	"github.com/slok/jiffybox/internal/app/status"
	"github.com/slok/jiffybox/internal/model"
)

// CreateBox creates a new box.
//
// Returns [ErrAlreadyExists] if a box with the same name exists (unless
// opts.AllowDuplicateName is set) and [ErrRefused] if the provider refused it.
func (c *Client) CreateBox(ctx context.Context, opts CreateBoxOpts) (*Result[Box], error) {
	svc, err := create.NewService(create.ServiceConfig{
		Provider: c.provider,
		Journal:  c.journal,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, create.Request{
		Spec:               toInternalBoxSpec(opts),
		AllowDuplicateName: opts.AllowDuplicateName,
	})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(res.Messages)

	return &Result[Box]{Value: fromInternalBox(*res.Value), Messages: res.Messages}, nil
}

// CloneBox clones an existing box into a new one with its own name and plan.
func (c *Client) CloneBox(ctx context.Context, nameOrID string, opts CloneBoxOpts) (*Result[Box], error) {
	svc, err := clone.NewService(clone.ServiceConfig{
		Provider: c.provider,
		Journal:  c.journal,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, clone.Request{
		Source: nameOrID,
		Name:   opts.Name,
		PlanID: opts.PlanID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(res.Messages)

	return &Result[Box]{Value: fromInternalBox(*res.Value), Messages: res.Messages}, nil
}

// RemoveBox deletes a box. The provider refuses to delete running boxes,
// in that case [ErrRefused] is returned.
func (c *Client) RemoveBox(ctx context.Context, nameOrID string) (*Result[int], error) {
	svc, err := remove.NewService(remove.ServiceConfig{
		Provider: c.provider,
		Journal:  c.journal,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, remove.Request{NameOrID: nameOrID})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(res.Messages)

	return &Result[int]{Value: res.BoxID, Messages: res.Messages}, nil
}

// GetBox returns a single box by name or ID.
//
// Returns [ErrNotFound] if no box matches.
func (c *Client) GetBox(ctx context.Context, nameOrID string) (*Result[Box], error) {
	res, err := c.Status(ctx, nameOrID)
	if err != nil {
		return nil, err
	}
	if len(res.Value) != 1 {
		return nil, fmt.Errorf("expected one box, got %d: %w", len(res.Value), ErrDecode)
	}

	return &Result[Box]{Value: res.Value[0], Messages: res.Messages}, nil
}

// Status returns the current state of one or more boxes, in the same order
// they were requested. Boxes are queried concurrently.
func (c *Client) Status(ctx context.Context, namesOrIDs ...string) (*Result[[]Box], error) {
	svc, err := status.NewService(status.ServiceConfig{
		Provider: c.provider,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, status.Request{NamesOrIDs: namesOrIDs})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(res.Messages)

	return &Result[[]Box]{Value: fromInternalBoxList(res.Value), Messages: res.Messages}, nil
}

// ListBoxes returns the boxes of the account sorted by ID.
// Pass nil opts to list all boxes.
func (c *Client) ListBoxes(ctx context.Context, opts *ListBoxesOpts) (*Result[[]Box], error) {
	svc, err := list.NewService(list.ServiceConfig{
		Provider: c.provider,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := list.Request{}
	if opts != nil {
		if opts.Status != nil {
			req.Status = string(*opts.Status)
		}
		req.Running = opts.Running
	}

	res, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(res.Messages)

	return &Result[[]Box]{Value: fromInternalBoxList(res.Value), Messages: res.Messages}, nil
}

// FreezeBox freezes a READY box.
func (c *Client) FreezeBox(ctx context.Context, nameOrID string) (*TransitionOutcome, error) {
	return c.transition(ctx, nameOrID, model.StatusCommandFreeze, 0)
}

// StartBox starts a READY box.
func (c *Client) StartBox(ctx context.Context, nameOrID string) (*TransitionOutcome, error) {
	return c.transition(ctx, nameOrID, model.StatusCommandStart, 0)
}

// StopBox gracefully shuts down a READY box.
func (c *Client) StopBox(ctx context.Context, nameOrID string) (*TransitionOutcome, error) {
	return c.transition(ctx, nameOrID, model.StatusCommandShutdown, 0)
}

// PullPlugBox powers off a READY box without a graceful shutdown.
func (c *Client) PullPlugBox(ctx context.Context, nameOrID string) (*TransitionOutcome, error) {
	return c.transition(ctx, nameOrID, model.StatusCommandPullPlug, 0)
}

// ThawBox thaws a FROZEN box using planID as its new plan.
func (c *Client) ThawBox(ctx context.Context, nameOrID string, planID int) (*TransitionOutcome, error) {
	return c.transition(ctx, nameOrID, model.StatusCommandThaw, planID)
}

// transition runs a lifecycle command. The box status is checked right before
// sending the command, if it doesn't allow it the outcome is rejected and no
// error is returned.
func (c *Client) transition(ctx context.Context, nameOrID string, cmd model.StatusCommand, planID int) (*TransitionOutcome, error) {
	svc, err := lifecycle.NewService(lifecycle.ServiceConfig{
		Provider: c.provider,
		Journal:  c.journal,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	out, err := svc.Run(ctx, lifecycle.Request{
		NameOrID: nameOrID,
		Command:  cmd,
		PlanID:   planID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(out.Messages)

	result := fromInternalTransitionOutcome(*out)
	return &result, nil
}

// Backups returns the backup slots of a box.
func (c *Client) Backups(ctx context.Context, nameOrID string) (*Result[BoxBackups], error) {
	svc, err := backups.NewService(backups.ServiceConfig{
		Provider: c.provider,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, backups.Request{NameOrID: nameOrID})
	if err != nil {
		return nil, mapError(err)
	}
	c.notify(res.Messages)

	return &Result[BoxBackups]{Value: fromInternalBackups(res.Value), Messages: res.Messages}, nil
}
