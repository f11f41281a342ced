package provider

import (
	"context"
	"encoding/json"

	"github.com/slok/jiffybox/internal/model"
)

// Provider is the typed interface to a box provider.
//
// Every successful call returns the provider messages along with the value.
//
//go:generate mockery --case underscore --output providermock --outpkg providermock --name Provider
type Provider interface {
	CreateBox(ctx context.Context, spec model.BoxSpec) (*model.Result[*model.Box], error)
	CloneBox(ctx context.Context, id int, name string, planID int) (*model.Result[*model.Box], error)
	DeleteBox(ctx context.Context, id int) (*model.Result[bool], error)
	GetBox(ctx context.Context, id int) (*model.Result[*model.Box], error)
	ListBoxes(ctx context.Context) (*model.Result[[]model.Box], error)
	// Transition sends a status command to a box if its current status allows it.
	// A rejected transition is not an error.
	Transition(ctx context.Context, id int, cmd model.StatusCommand, planID int) (*model.TransitionOutcome, error)
	Backups(ctx context.Context, id int) (*model.Result[*model.BoxBackups], error)

	Plans(ctx context.Context) (*model.Result[[]model.Plan], error)
	Distributions(ctx context.Context) (*model.Result[[]model.Distribution], error)
	IPs(ctx context.Context) (*model.Result[json.RawMessage], error)
	Doc(ctx context.Context, sub string) (*model.Result[json.RawMessage], error)
}
