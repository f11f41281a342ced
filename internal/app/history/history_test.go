package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/app/history"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/providermock"
	"github.com/slok/jiffybox/internal/storage/memory"
)

func intPtr(i int) *int { return &i }

func TestServiceRun(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		{ID: "01A", BoxID: intPtr(1), Operation: "create", Outcome: model.JournalOutcomeApplied, CreatedAt: t0},
		{ID: "01B", BoxID: intPtr(2), Operation: "create", Outcome: model.JournalOutcomeApplied, CreatedAt: t0.Add(time.Second)},
		{ID: "01C", BoxID: intPtr(1), Operation: "freeze", Outcome: model.JournalOutcomeRejected, CreatedAt: t0.Add(2 * time.Second)},
	}

	tests := map[string]struct {
		req         history.Request
		setupMocks  func(m *providermock.Provider)
		useProvider bool
		expIDs      []string
		expErr      error
	}{
		"Without filter should return every entry.": {
			req:    history.Request{},
			expIDs: []string{"01C", "01B", "01A"},
		},

		"Filtering by id should only return that box.": {
			req:    history.Request{NameOrID: "1"},
			expIDs: []string{"01C", "01A"},
		},

		"Filtering by name should resolve it with the provider.": {
			req: history.Request{NameOrID: "db"},
			setupMocks: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(&model.Result[[]model.Box]{Value: []model.Box{{ID: 2, Name: "db"}}}, nil)
			},
			useProvider: true,
			expIDs:      []string{"01B"},
		},

		"Filtering by name without provider should fail.": {
			req:    history.Request{NameOrID: "db"},
			expErr: model.ErrNotValid,
		},

		"A limit should return the newest entries.": {
			req:    history.Request{Limit: 1},
			expIDs: []string{"01C"},
		},

		"A negative limit should fail.": {
			req:    history.Request{Limit: -1},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)
			for _, e := range entries {
				require.NoError(repo.AddEntry(ctx, e))
			}

			cfg := history.ServiceConfig{Repository: repo}
			if test.useProvider {
				m := providermock.NewProvider(t)
				test.setupMocks(m)
				cfg.Provider = m
			}

			svc, err := history.NewService(cfg)
			require.NoError(err)

			got, err := svc.Run(ctx, test.req)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				return
			}
			require.NoError(err)

			ids := []string{}
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}
