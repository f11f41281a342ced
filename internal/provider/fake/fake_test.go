package fake_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/fake"
)

func TestProviderLifecycle(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, p *fake.Provider) error
		expErr  error
	}{
		"Creating a box should work.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10, Metadata: map[string]any{"k": "v"}})
				require.NoError(t, err)
				assert.Equal(t, 1, res.Value.ID)
				assert.Equal(t, model.BoxStatusReady, res.Value.Status)
				assert.Equal(t, "CloudLevel 1", res.Value.Plan.Name)
				assert.Equal(t, map[string]any{"k": "v"}, res.Value.Metadata)
				assert.NotEmpty(t, res.Messages)
				return nil
			},
		},

		"Creating a box with an unknown plan should be refused.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				_, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 99})
				return err
			},
			expErr: model.ErrRefused,
		},

		"Creating a box with an invalid spec should fail.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				_, err := p.CreateBox(ctx, model.BoxSpec{PlanID: 10})
				return err
			},
			expErr: model.ErrNotValid,
		},

		"Freezing and thawing a box should move it between ready and frozen.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)
				id := res.Value.ID

				out, err := p.Transition(ctx, id, model.StatusCommandFreeze, 0)
				require.NoError(t, err)
				assert.Equal(t, model.TransitionApplied, out.State)
				assert.Equal(t, model.BoxStatusFrozen, out.Box.Status)

				out, err = p.Transition(ctx, id, model.StatusCommandFreeze, 0)
				require.NoError(t, err)
				assert.Equal(t, model.TransitionRejected, out.State)
				assert.Equal(t, model.BoxStatusFrozen, out.Observed)
				assert.NotEmpty(t, out.Reason)

				out, err = p.Transition(ctx, id, model.StatusCommandThaw, 20)
				require.NoError(t, err)
				assert.Equal(t, model.TransitionApplied, out.State)
				assert.Equal(t, model.BoxStatusReady, out.Box.Status)
				assert.Equal(t, 20, out.Box.Plan.ID)

				return nil
			},
		},

		"Starting and stopping a box should change the running flag.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)
				id := res.Value.ID

				_, err = p.Transition(ctx, id, model.StatusCommandStart, 0)
				require.NoError(t, err)
				got, err := p.GetBox(ctx, id)
				require.NoError(t, err)
				assert.True(t, got.Value.Running)

				_, err = p.Transition(ctx, id, model.StatusCommandShutdown, 0)
				require.NoError(t, err)
				got, err = p.GetBox(ctx, id)
				require.NoError(t, err)
				assert.False(t, got.Value.Running)

				return nil
			},
		},

		"Transitions on a box in an unknown status should be rejected.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)
				require.NoError(t, p.SetStatus(res.Value.ID, "UPDATING"))

				out, err := p.Transition(ctx, res.Value.ID, model.StatusCommandStart, 0)
				require.NoError(t, err)
				assert.Equal(t, model.TransitionRejected, out.State)
				return nil
			},
		},

		"Deleting a running box should be refused.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)
				_, err = p.Transition(ctx, res.Value.ID, model.StatusCommandStart, 0)
				require.NoError(t, err)

				_, err = p.DeleteBox(ctx, res.Value.ID)
				return err
			},
			expErr: model.ErrRefused,
		},

		"Deleting a stopped box should remove it.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)

				_, err = p.DeleteBox(ctx, res.Value.ID)
				require.NoError(t, err)

				_, err = p.GetBox(ctx, res.Value.ID)
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Cloning a box should create a new box with the requested plan.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)

				clone, err := p.CloneBox(ctx, res.Value.ID, "copy", 30)
				require.NoError(t, err)
				assert.Equal(t, 2, clone.Value.ID)
				assert.Equal(t, 30, clone.Value.Plan.ID)

				list, err := p.ListBoxes(ctx)
				require.NoError(t, err)
				assert.Len(t, list.Value, 2)
				return nil
			},
		},

		"Thawing without a plan should fail.": {
			actions: func(ctx context.Context, t *testing.T, p *fake.Provider) error {
				res, err := p.CreateBox(ctx, model.BoxSpec{Name: "test", PlanID: 10})
				require.NoError(t, err)
				_, err = p.Transition(ctx, res.Value.ID, model.StatusCommandThaw, 0)
				return err
			},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := fake.NewProvider(fake.ProviderConfig{})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, p)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderBackups(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := fake.NewProvider(fake.ProviderConfig{TimeNow: func() time.Time { return now }})
	require.NoError(t, err)

	res, err := p.CreateBox(context.Background(), model.BoxSpec{Name: "test", PlanID: 10})
	require.NoError(t, err)

	backups, err := p.Backups(context.Background(), res.Value.ID)
	require.NoError(t, err)
	assert.Nil(t, backups.Value.Daily)

	now = now.Add(48 * time.Hour)
	backups, err = p.Backups(context.Background(), res.Value.ID)
	require.NoError(t, err)
	require.NotNil(t, backups.Value.Daily)
	assert.Equal(t, "daily-1", backups.Value.Daily.ID)
}

func TestProviderCatalog(t *testing.T) {
	p, err := fake.NewProvider(fake.ProviderConfig{})
	require.NoError(t, err)

	plans, err := p.Plans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.DefaultPlans, plans.Value)

	dists, err := p.Distributions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.DefaultDistributions, dists.Value)

	doc, err := p.Doc(context.Background(), "/plans/")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"plans","description":"Documentation of plans."}`, string(doc.Value))
}
