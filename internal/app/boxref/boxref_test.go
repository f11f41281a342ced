package boxref_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slok/jiffybox/internal/app/boxref"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/providermock"
)

func TestResolve(t *testing.T) {
	boxes := &model.Result[[]model.Box]{Value: []model.Box{
		{ID: 1, Name: "web"},
		{ID: 2, Name: "db"},
		{ID: 3, Name: "db"},
		{ID: 7, Name: "42"},
	}}

	tests := map[string]struct {
		ref    string
		mock   func(m *providermock.Provider)
		expID  int
		expErr error
	}{
		"A numeric reference should be used as id without listing.": {
			ref:   "42",
			mock:  func(m *providermock.Provider) {},
			expID: 42,
		},

		"A numeric name with the name prefix should be resolved by name.": {
			ref: "name:42",
			mock: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(boxes, nil)
			},
			expID: 7,
		},

		"A regular name with the name prefix should be resolved by name.": {
			ref: "name:web",
			mock: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(boxes, nil)
			},
			expID: 1,
		},

		"An empty name after the name prefix should fail.": {
			ref:    "name:",
			mock:   func(m *providermock.Provider) {},
			expErr: model.ErrNotValid,
		},

		"A name should be resolved to its box id.": {
			ref: "web",
			mock: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(boxes, nil)
			},
			expID: 1,
		},

		"A missing name should fail as not found.": {
			ref: "cache",
			mock: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(boxes, nil)
			},
			expErr: model.ErrNotFound,
		},

		"An ambiguous name should fail as not valid.": {
			ref: "db",
			mock: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(boxes, nil)
			},
			expErr: model.ErrNotValid,
		},

		"An empty reference should fail.": {
			ref:    "  ",
			mock:   func(m *providermock.Provider) {},
			expErr: model.ErrNotValid,
		},

		"A listing error should fail.": {
			ref: "web",
			mock: func(m *providermock.Provider) {
				m.On("ListBoxes", mock.Anything).Once().Return(nil, fmt.Errorf("dial: %w", model.ErrTransport))
			},
			expErr: model.ErrTransport,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := providermock.NewProvider(t)
			test.mock(m)

			id, err := boxref.Resolve(context.Background(), m, test.ref)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expID, id)
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := boxref.ParseID(" 12 ")
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	_, ok = boxref.ParseID("0")
	assert.False(t, ok)

	_, ok = boxref.ParseID("web")
	assert.False(t, ok)
}
