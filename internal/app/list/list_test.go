package list_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/app/list"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/providermock"
)

func boolPtr(b bool) *bool { return &b }

func TestServiceRun(t *testing.T) {
	boxes := []model.Box{
		{ID: 1, Name: "a", Status: model.BoxStatusReady, Running: true},
		{ID: 2, Name: "b", Status: model.BoxStatusFrozen},
		{ID: 3, Name: "c", Status: model.BoxStatusReady},
	}

	tests := map[string]struct {
		req    list.Request
		expIDs []int
	}{
		"Listing without filters should return every box.": {
			req:    list.Request{},
			expIDs: []int{1, 2, 3},
		},

		"Listing by status should ignore the case.": {
			req:    list.Request{Status: "ready"},
			expIDs: []int{1, 3},
		},

		"Listing running boxes should only return running ones.": {
			req:    list.Request{Running: boolPtr(true)},
			expIDs: []int{1},
		},

		"Listing by status and not running should combine filters.": {
			req:    list.Request{Status: "READY", Running: boolPtr(false)},
			expIDs: []int{3},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := providermock.NewProvider(t)
			m.On("ListBoxes", mock.Anything).Once().Return(&model.Result[[]model.Box]{Value: boxes, Messages: []string{"m"}}, nil)

			svc, err := list.NewService(list.ServiceConfig{Provider: m})
			require.NoError(t, err)

			res, err := svc.Run(context.Background(), test.req)
			require.NoError(t, err)

			ids := []int{}
			for _, b := range res.Value {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, test.expIDs, ids)
			assert.Equal(t, []string{"m"}, res.Messages)
		})
	}
}
