package model

// Result pairs the value of a successful provider call with the messages the
// provider sent along with it. Messages are informational, never errors.
type Result[T any] struct {
	Value    T
	Messages []string
}

// TransitionState is the outcome kind of a status transition that didn't fail.
type TransitionState string

const (
	// TransitionApplied means the command was sent to the provider.
	TransitionApplied TransitionState = "applied"
	// TransitionRejected means the observed status doesn't allow the command and
	// nothing was sent.
	TransitionRejected TransitionState = "rejected"
)

// TransitionOutcome is the result of requesting a status transition on a box.
type TransitionOutcome struct {
	State    TransitionState
	Command  StatusCommand
	Observed BoxStatus
	// Reason explains a rejection.
	Reason string
	// Box is the record returned by the provider when the transition was applied,
	// it can be nil if the provider didn't return one.
	Box      *Box
	Messages []string
}

// Applied returns true if the command reached the provider.
func (o TransitionOutcome) Applied() bool { return o.State == TransitionApplied }
