package create_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/app/create"
	"github.com/slok/jiffybox/internal/journal"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/providermock"
	"github.com/slok/jiffybox/internal/storage/memory"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		cfg    create.ServiceConfig
		expErr bool
		errMsg string
	}{
		"Valid config with all fields": {
			cfg: create.ServiceConfig{
				Provider: &providermock.Provider{},
				Journal:  journal.Noop,
				Logger:   log.Noop,
			},
		},
		"Valid config without journal and logger uses Noop": {
			cfg: create.ServiceConfig{
				Provider: &providermock.Provider{},
			},
		},
		"Missing provider returns error": {
			cfg:    create.ServiceConfig{},
			expErr: true,
			errMsg: "provider is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := create.NewService(tt.cfg)

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, svc)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestServiceRun(t *testing.T) {
	existing := &model.Result[[]model.Box]{Value: []model.Box{{ID: 1, Name: "taken"}}}

	tests := map[string]struct {
		req          create.Request
		setupMocks   func(m *providermock.Provider)
		expErr       error
		expBox       *model.Box
		expJournaled []model.JournalOutcome
	}{
		"Creating a box with a free name should create it.": {
			req: create.Request{Spec: model.BoxSpec{Name: "web", PlanID: 10}},
			setupMocks: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(existing, nil)
				m.On("CreateBox", mock.Anything, model.BoxSpec{Name: "web", PlanID: 10}).Once().
					Return(&model.Result[*model.Box]{Value: &model.Box{ID: 2, Name: "web"}, Messages: []string{"booting"}}, nil)
			},
			expBox:       &model.Box{ID: 2, Name: "web"},
			expJournaled: []model.JournalOutcome{model.JournalOutcomeApplied},
		},

		"Creating a box with a used name should fail.": {
			req: create.Request{Spec: model.BoxSpec{Name: "taken", PlanID: 10}},
			setupMocks: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(existing, nil)
			},
			expErr:       model.ErrAlreadyExists,
			expJournaled: []model.JournalOutcome{},
		},

		"Creating a box with a used name allowing duplicates should create it.": {
			req: create.Request{Spec: model.BoxSpec{Name: "taken", PlanID: 10}, AllowDuplicateName: true},
			setupMocks: func(m *providermock.Provider) {
				m.On("CreateBox", mock.Anything, mock.Anything).Once().
					Return(&model.Result[*model.Box]{Value: &model.Box{ID: 2, Name: "taken"}}, nil)
			},
			expBox:       &model.Box{ID: 2, Name: "taken"},
			expJournaled: []model.JournalOutcome{model.JournalOutcomeApplied},
		},

		"An invalid spec should fail without calling the provider.": {
			req:          create.Request{Spec: model.BoxSpec{Name: "web"}},
			setupMocks:   func(m *providermock.Provider) {},
			expErr:       model.ErrNotValid,
			expJournaled: []model.JournalOutcome{},
		},

		"A provider failure should be journaled as failed.": {
			req: create.Request{Spec: model.BoxSpec{Name: "web", PlanID: 10}},
			setupMocks: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(existing, nil)
				m.On("CreateBox", mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("plan unknown: %w", model.ErrRefused))
			},
			expErr:       model.ErrRefused,
			expJournaled: []model.JournalOutcome{model.JournalOutcomeFailed},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := providermock.NewProvider(t)
			test.setupMocks(m)

			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)
			rec, err := journal.NewRecorder(journal.RecorderConfig{Repository: repo})
			require.NoError(err)

			svc, err := create.NewService(create.ServiceConfig{Provider: m, Journal: rec})
			require.NoError(err)

			res, err := svc.Run(context.Background(), test.req)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else if assert.NoError(err) {
				assert.Equal(test.expBox, res.Value)
			}

			entries, err := repo.ListEntries(context.Background(), model.JournalQuery{})
			require.NoError(err)
			outcomes := []model.JournalOutcome{}
			for _, e := range entries {
				assert.Equal("create", e.Operation)
				outcomes = append(outcomes, e.Outcome)
			}
			assert.Equal(test.expJournaled, outcomes)
		})
	}
}
