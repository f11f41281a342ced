package jiffybox_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider/jiffybox"
)

// routes maps "METHOD path" to the body answered.
type routes map[string]string

func newTestProvider(t *testing.T, r routes) *jiffybox.Provider {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, ok := r[req.Method+" "+req.URL.Path]
		if !ok {
			http.NotFound(w, req)
			return
		}
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	p, err := jiffybox.NewProvider(jiffybox.ProviderConfig{
		ClientConfig: api.ClientConfig{Token: "tok", BaseURL: srv.URL},
	})
	require.NoError(t, err)

	return p
}

func TestNewProviderWithoutToken(t *testing.T) {
	_, err := jiffybox.NewProvider(jiffybox.ProviderConfig{})
	assert.Error(t, err)
}

func TestProviderCreateBox(t *testing.T) {
	tests := map[string]struct {
		body       string
		expBox     *model.Box
		expMsgs    []string
		expErr     error
		expErrText string
	}{
		"A created box should be returned with its messages.": {
			body:    `{"messages":["booting"],"result":{"id":7,"name":"test","status":"CREATING"}}`,
			expBox:  &model.Box{ID: 7, Name: "test", Status: "CREATING"},
			expMsgs: []string{"booting"},
		},

		"A false result should be a refusal carrying the messages.": {
			body:       `{"messages":[{"type":"error","message":"plan unknown"}],"result":false}`,
			expErr:     model.ErrRefused,
			expErrText: "error: plan unknown",
		},

		"A non JSON answer should be a decode error.": {
			body:   `<html>oops</html>`,
			expErr: model.ErrDecode,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			p := newTestProvider(t, routes{"POST /tok/v1.0/jiffyBoxes": test.body})

			res, err := p.CreateBox(context.Background(), model.BoxSpec{Name: "test", PlanID: 10})
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.Contains(err.Error(), test.expErrText)
				return
			}
			require.NoError(err)
			assert.Equal(test.expBox, res.Value)
			assert.Equal(test.expMsgs, res.Messages)
		})
	}
}

func TestProviderTransition(t *testing.T) {
	tests := map[string]struct {
		routes   routes
		cmd      model.StatusCommand
		planID   int
		expState model.TransitionState
		expBox   *model.Box
		expMsgs  []string
	}{
		"Freezing a ready box should be applied.": {
			routes: routes{
				"GET /tok/v1.0/jiffyBoxes/12": `{"messages":[],"result":{"id":12,"status":"READY"}}`,
				"PUT /tok/v1.0/jiffyBoxes/12": `{"messages":["freezing"],"result":{"id":12,"status":"UPDATING"}}`,
			},
			cmd:      model.StatusCommandFreeze,
			expState: model.TransitionApplied,
			expBox:   &model.Box{ID: 12, Status: "UPDATING"},
			expMsgs:  []string{"freezing"},
		},

		"Thawing a ready box should be rejected.": {
			routes: routes{
				"GET /tok/v1.0/jiffyBoxes/12": `{"messages":[],"result":{"id":12,"status":"READY"}}`,
			},
			cmd:      model.StatusCommandThaw,
			planID:   10,
			expState: model.TransitionRejected,
			expMsgs:  []string{},
		},

		"An applied transition without box record should be applied without box.": {
			routes: routes{
				"GET /tok/v1.0/jiffyBoxes/12": `{"messages":[],"result":{"id":12,"status":"FROZEN"}}`,
				"PUT /tok/v1.0/jiffyBoxes/12": `{"messages":[],"result":true}`,
			},
			cmd:      model.StatusCommandThaw,
			planID:   10,
			expState: model.TransitionApplied,
			expMsgs:  []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			p := newTestProvider(t, test.routes)

			out, err := p.Transition(context.Background(), 12, test.cmd, test.planID)
			require.NoError(err)
			assert.Equal(test.expState, out.State)
			assert.Equal(test.expBox, out.Box)
			assert.Equal(test.expMsgs, out.Messages)
		})
	}
}

func TestProviderListBoxes(t *testing.T) {
	p := newTestProvider(t, routes{
		"GET /tok/v1.0/jiffyBoxes": `{"messages":[],"result":{"3":{"id":3,"name":"b"},"1":{"id":1,"name":"a"}}}`,
	})

	res, err := p.ListBoxes(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "a", res.Value[0].Name)
	assert.Equal(t, "b", res.Value[1].Name)
}

func TestProviderDeleteBox(t *testing.T) {
	p := newTestProvider(t, routes{
		"DELETE /tok/v1.0/jiffyBoxes/12": `{"messages":["bye"],"result":true}`,
		"DELETE /tok/v1.0/jiffyBoxes/13": `{"messages":["box is running"],"result":false}`,
	})

	res, err := p.DeleteBox(context.Background(), 12)
	require.NoError(t, err)
	assert.True(t, res.Value)
	assert.Equal(t, []string{"bye"}, res.Messages)

	_, err = p.DeleteBox(context.Background(), 13)
	assert.ErrorIs(t, err, model.ErrRefused)
}

func TestProviderCatalog(t *testing.T) {
	p := newTestProvider(t, routes{
		"GET /tok/v1.0/plans":         `{"messages":[],"result":{"20":{"id":20,"name":"L2"},"10":{"id":10,"name":"L1"}}}`,
		"GET /tok/v1.0/distributions": `{"messages":[],"result":{"debian":{"name":"Debian"}}}`,
		"GET /tok/v1.0/ips":           `{"messages":[],"result":{"1":{"public":["1.2.3.4"]}}}`,
		"GET /tok/v1.0/doc/plans":     `{"messages":[],"result":"plans doc"}`,
	})
	ctx := context.Background()

	plans, err := p.Plans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Plan{{ID: 10, Name: "L1"}, {ID: 20, Name: "L2"}}, plans.Value)

	dists, err := p.Distributions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Distribution{{Key: "debian", Name: "Debian"}}, dists.Value)

	ips, err := p.IPs(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"public":["1.2.3.4"]}}`, string(ips.Value))

	doc, err := p.Doc(ctx, "plans")
	require.NoError(t, err)
	assert.JSONEq(t, `"plans doc"`, string(doc.Value))
}
