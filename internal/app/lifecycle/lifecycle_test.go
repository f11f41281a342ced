package lifecycle_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/app/lifecycle"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/providermock"
	"github.com/slok/jiffybox/internal/storage/memory"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req        lifecycle.Request
		setupMocks func(m *providermock.Provider)
		expState   model.TransitionState
		expErr     error
		expEntry   *model.JournalEntry
	}{
		"An applied transition should be journaled as applied.": {
			req: lifecycle.Request{NameOrID: "12", Command: model.StatusCommandFreeze},
			setupMocks: func(m *providermock.Provider) {
				m.On("Transition", mock.Anything, 12, model.StatusCommandFreeze, 0).Once().Return(&model.TransitionOutcome{
					State:    model.TransitionApplied,
					Command:  model.StatusCommandFreeze,
					Observed: model.BoxStatusReady,
					Messages: []string{"freezing"},
				}, nil)
			},
			expState: model.TransitionApplied,
			expEntry: &model.JournalEntry{Operation: "freeze", Outcome: model.JournalOutcomeApplied, Messages: []string{"freezing"}},
		},

		"A rejected transition should be returned without error and journaled as rejected.": {
			req: lifecycle.Request{NameOrID: "12", Command: model.StatusCommandThaw, PlanID: 10},
			setupMocks: func(m *providermock.Provider) {
				m.On("Transition", mock.Anything, 12, model.StatusCommandThaw, 10).Once().Return(&model.TransitionOutcome{
					State:    model.TransitionRejected,
					Command:  model.StatusCommandThaw,
					Observed: model.BoxStatusReady,
					Reason:   "THAW needs status FROZEN",
				}, nil)
			},
			expState: model.TransitionRejected,
			expEntry: &model.JournalEntry{Operation: "thaw", Outcome: model.JournalOutcomeRejected, Messages: []string{"THAW needs status FROZEN"}},
		},

		"A failed transition should be journaled as failed.": {
			req: lifecycle.Request{NameOrID: "12", Command: model.StatusCommandStart},
			setupMocks: func(m *providermock.Provider) {
				m.On("Transition", mock.Anything, 12, model.StatusCommandStart, 0).Once().Return(nil, fmt.Errorf("dial: %w", model.ErrTransport))
			},
			expErr:   model.ErrTransport,
			expEntry: &model.JournalEntry{Operation: "start", Outcome: model.JournalOutcomeFailed, Messages: []string{}, Error: "dial: transport failure"},
		},

		"Thawing without plan should fail before calling the provider.": {
			req:        lifecycle.Request{NameOrID: "12", Command: model.StatusCommandThaw},
			setupMocks: func(m *providermock.Provider) {},
			expErr:     model.ErrNotValid,
		},

		"An unknown command should fail before calling the provider.": {
			req:        lifecycle.Request{NameOrID: "12", Command: "REBOOT"},
			setupMocks: func(m *providermock.Provider) {},
			expErr:     model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			m := providermock.NewProvider(t)
			test.setupMocks(m)

			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)
			rec, err := journal.NewRecorder(journal.RecorderConfig{Repository: repo})
			require.NoError(err)

			svc, err := lifecycle.NewService(lifecycle.ServiceConfig{Provider: m, Journal: rec})
			require.NoError(err)

			out, err := svc.Run(ctx, test.req)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else if assert.NoError(err) {
				assert.Equal(test.expState, out.State)
			}

			entries, err := repo.ListEntries(ctx, model.JournalQuery{})
			require.NoError(err)
			if test.expEntry == nil {
				assert.Empty(entries)
				return
			}
			require.Len(entries, 1)
			got := entries[0]
			require.NotNil(got.BoxID)
			assert.Equal(12, *got.BoxID)
			assert.Equal(test.expEntry.Operation, got.Operation)
			assert.Equal(test.expEntry.Outcome, got.Outcome)
			assert.Equal(test.expEntry.Messages, got.Messages)
			assert.Equal(test.expEntry.Error, got.Error)
		})
	}
}
