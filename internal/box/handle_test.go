package box_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/api/apimock"
	"github.com/slok/jiffybox/internal/box"
	"github.com/slok/jiffybox/internal/model"
)

type recordedRequest struct {
	Method string
	Path   string
	Form   url.Values
}

// fakeServer serves a single box with a settable status and records every request.
type fakeServer struct {
	mu       sync.Mutex
	status   string
	requests []recordedRequest
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(body))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Form: form})

	if r.Method == http.MethodPut {
		_, _ = fmt.Fprintf(w, `{"messages":[],"result":{"id":12,"name":"test","status":"UPDATING"}}`)
		return
	}
	_, _ = fmt.Fprintf(w, `{"messages":["msg1"],"result":{"id":12,"name":"test","status":%q}}`, f.status)
}

func (f *fakeServer) writes() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := []recordedRequest{}
	for _, r := range f.requests {
		if r.Method != http.MethodGet {
			res = append(res, r)
		}
	}
	return res
}

func newTestHandle(t *testing.T, status string, id *int) (*box.Handle, *fakeServer) {
	t.Helper()

	fs := &fakeServer{status: status}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.ClientConfig{Token: "tok", BaseURL: srv.URL})
	require.NoError(t, err)

	h, err := box.NewHandle(box.HandleConfig{Invoker: client, ID: id})
	require.NoError(t, err)

	return h, fs
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestHandleCreate(t *testing.T) {
	tests := map[string]struct {
		spec    model.BoxSpec
		expForm url.Values
		expErr  bool
	}{
		"Creating with only the required fields should send name and plan only.": {
			spec: model.BoxSpec{Name: "test", PlanID: 10},
			expForm: url.Values{
				"name":   {"test"},
				"planid": {"10"},
			},
		},

		"Creating from a backup should add only the backup id.": {
			spec: model.BoxSpec{Name: "test", PlanID: 10, BackupID: intPtr(7)},
			expForm: url.Values{
				"name":     {"test"},
				"planid":   {"10"},
				"backupid": {"7"},
			},
		},

		"Creating with every optional field should send all of them.": {
			spec: model.BoxSpec{
				Name:         "test",
				PlanID:       10,
				Distribution: strPtr("debian_bookworm_64bit"),
				Password:     strPtr("s3cret"),
				UseSSHKey:    boolPtr(false),
				Metadata:     map[string]any{"owner": "ops"},
			},
			expForm: url.Values{
				"name":         {"test"},
				"planid":       {"10"},
				"distribution": {"debian_bookworm_64bit"},
				"password":     {"s3cret"},
				"use_sshkey":   {"0"},
				"metadata":     {`{"owner":"ops"}`},
			},
		},

		"Metadata should be sent even without using an SSH key.": {
			spec: model.BoxSpec{Name: "test", PlanID: 10, Metadata: map[string]any{"a": 1}},
			expForm: url.Values{
				"name":     {"test"},
				"planid":   {"10"},
				"metadata": {`{"a":1}`},
			},
		},

		"An invalid spec should fail without sending anything.": {
			spec:   model.BoxSpec{Name: "test"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			h, fs := newTestHandle(t, "READY", nil)

			_, err := h.Create(context.Background(), test.spec)
			if test.expErr {
				assert.ErrorIs(err, model.ErrNotValid)
				assert.Empty(fs.writes())
				return
			}
			require.NoError(err)

			writes := fs.writes()
			require.Len(writes, 1)
			assert.Equal(http.MethodPost, writes[0].Method)
			assert.Equal("/tok/v1.0/jiffyBoxes", writes[0].Path)
			assert.Equal(test.expForm, writes[0].Form)

			// Creating doesn't assign the new id.
			_, ok := h.ID()
			assert.False(ok)
		})
	}
}

func TestHandleClone(t *testing.T) {
	h, fs := newTestHandle(t, "READY", intPtr(12))

	_, err := h.Clone(context.Background(), "copy", 20)
	require.NoError(t, err)

	writes := fs.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, http.MethodPost, writes[0].Method)
	assert.Equal(t, "/tok/v1.0/jiffyBoxes/12", writes[0].Path)
	assert.Equal(t, url.Values{"name": {"copy"}, "planid": {"20"}}, writes[0].Form)
}

func TestHandleDelete(t *testing.T) {
	h, fs := newTestHandle(t, "READY", intPtr(12))

	_, err := h.Delete(context.Background())
	require.NoError(t, err)

	writes := fs.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, http.MethodDelete, writes[0].Method)
	assert.Equal(t, "/tok/v1.0/jiffyBoxes/12", writes[0].Path)
}

func TestHandleWithoutIDShouldFail(t *testing.T) {
	tests := map[string]struct {
		call func(ctx context.Context, h *box.Handle) error
	}{
		"Get.":     {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Get(ctx); return err }},
		"Status.":  {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Status(ctx); return err }},
		"Delete.":  {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Delete(ctx); return err }},
		"Clone.":   {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Clone(ctx, "x", 1); return err }},
		"Backups.": {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Backups(ctx); return err }},
		"Freeze.":  {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Freeze(ctx); return err }},
		"Thaw.":    {call: func(ctx context.Context, h *box.Handle) error { _, err := h.Thaw(ctx, 1); return err }},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mInvoker := apimock.NewInvoker(t)
			h, err := box.NewHandle(box.HandleConfig{Invoker: mInvoker})
			require.NoError(t, err)

			err = test.call(context.Background(), h)
			assert.ErrorIs(t, err, model.ErrNotValid)
		})
	}
}

func TestHandleSetID(t *testing.T) {
	h, err := box.NewHandle(box.HandleConfig{Invoker: apimock.NewInvoker(t)})
	require.NoError(t, err)

	_, ok := h.ID()
	assert.False(t, ok)

	h.SetID(42)
	id, ok := h.ID()
	assert.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestHandleStatus(t *testing.T) {
	tests := map[string]struct {
		result    string
		expStatus model.BoxStatus
		expErr    error
	}{
		"A ready box should report ready.": {
			result:    `{"id":12,"status":"READY"}`,
			expStatus: model.BoxStatusReady,
		},

		"Unknown statuses should be kept verbatim.": {
			result:    `{"id":12,"status":"UPDATING"}`,
			expStatus: "UPDATING",
		},

		"A null result should fail decoding.": {
			result: `null`,
			expErr: model.ErrDecode,
		},

		"A record without status should fail decoding.": {
			result: `{"id":12}`,
			expErr: model.ErrDecode,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mInvoker := apimock.NewInvoker(t)
			mInvoker.On("Do", mock.Anything, api.Request{Method: "GET", ID: intPtr(12)}).Once().
				Return(&api.Response{Result: []byte(test.result), Messages: []string{}}, nil)

			h, err := box.NewHandle(box.HandleConfig{Invoker: mInvoker, ID: intPtr(12)})
			require.NoError(t, err)

			st, err := h.Status(context.Background())
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			assert.NoError(err)
			assert.Equal(test.expStatus, st)
		})
	}
}

func TestHandleBackups(t *testing.T) {
	mInvoker := apimock.NewInvoker(t)
	mInvoker.On("Do", mock.Anything, api.Request{Method: "GET", Collection: "backups", ID: intPtr(12)}).Once().
		Return(&api.Response{Result: []byte(`{}`), Messages: []string{}}, nil)

	h, err := box.NewHandle(box.HandleConfig{Invoker: mInvoker, ID: intPtr(12)})
	require.NoError(t, err)

	_, err = h.Backups(context.Background())
	assert.NoError(t, err)
}

func TestHandleDiagnostics(t *testing.T) {
	h, _ := newTestHandle(t, "READY", intPtr(12))

	_, err := h.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"msg1"}, h.LastMessages())
	assert.Empty(t, h.LastError())
}
