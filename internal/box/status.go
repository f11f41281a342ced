package box

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/model"
)

// requiredStatus is the observed status each command needs.
var requiredStatus = map[model.StatusCommand]model.BoxStatus{
	model.StatusCommandFreeze:   model.BoxStatusReady,
	model.StatusCommandStart:    model.BoxStatusReady,
	model.StatusCommandShutdown: model.BoxStatusReady,
	model.StatusCommandPullPlug: model.BoxStatusReady,
	model.StatusCommandThaw:     model.BoxStatusFrozen,
}

// RequiredStatus returns the status a box must be in to accept the command.
func RequiredStatus(cmd model.StatusCommand) (model.BoxStatus, error) {
	st, ok := requiredStatus[cmd]
	if !ok {
		return "", fmt.Errorf("unknown status command %q: %w", cmd, model.ErrNotValid)
	}
	return st, nil
}

// CanTransition returns true if a box in the observed status accepts the command.
func CanTransition(observed model.BoxStatus, cmd model.StatusCommand) bool {
	st, ok := requiredStatus[cmd]
	return ok && st == observed
}

// Transition is the result of a status change request that didn't fail.
type Transition struct {
	State    model.TransitionState
	Command  model.StatusCommand
	Observed model.BoxStatus
	// Reason explains a rejection.
	Reason string
	// Response is the provider response, nil when rejected.
	Response *api.Response
}

// Transition sends a status command to the box if its current status allows it.
//
// The status is queried right before sending the command and both are separate
// calls, a change made by someone else in between is not detected. A command
// the current status doesn't allow is not sent and the transition is rejected,
// that's not an error.
func (h *Handle) Transition(ctx context.Context, cmd model.StatusCommand, planID int) (*Transition, error) {
	required, err := RequiredStatus(cmd)
	if err != nil {
		return nil, err
	}
	if cmd == model.StatusCommandThaw && planID <= 0 {
		return nil, fmt.Errorf("thaw needs a positive plan id: %w", model.ErrNotValid)
	}

	id, err := h.requireID()
	if err != nil {
		return nil, err
	}

	observed, err := h.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get status before %s: %w", cmd, err)
	}

	if !CanTransition(observed, cmd) {
		reason := fmt.Sprintf("%s needs status %s, box %d is %s", cmd, required, id, observed)
		h.logger.Infof("Transition rejected: %s", reason)
		return &Transition{
			State:    model.TransitionRejected,
			Command:  cmd,
			Observed: observed,
			Reason:   reason,
		}, nil
	}

	h.logger.Debugf("Sending %s to box %d", cmd, id)
	resp, err := h.do(ctx, api.Request{
		Method:  http.MethodPut,
		ID:      &id,
		Payload: transitionPayload(cmd, planID),
	})
	if err != nil {
		return nil, fmt.Errorf("could not send %s to box %d: %w", cmd, id, err)
	}

	return &Transition{
		State:    model.TransitionApplied,
		Command:  cmd,
		Observed: observed,
		Response: resp,
	}, nil
}

func transitionPayload(cmd model.StatusCommand, planID int) map[string]string {
	payload := map[string]string{"status": string(cmd)}
	if cmd == model.StatusCommandThaw {
		payload["planid"] = strconv.Itoa(planID)
	}
	return payload
}
