package api

import (
	"errors"
	"sync"

	"github.com/slok/jiffybox/internal/model"
)

// Diagnostics keeps the last transport error and the last provider messages of
// a sequence of calls.
//
// Both values are cleared at the start of every tracked call, so they never
// belong to an older call. Calls running concurrently on the same Diagnostics
// overwrite each other's values, use the call results when that matters.
type Diagnostics struct {
	mu           sync.Mutex
	lastError    string
	lastMessages []string
}

// Track runs a call recording its diagnostics.
func (d *Diagnostics) Track(call func() (*Response, error)) (*Response, error) {
	d.mu.Lock()
	d.lastError = ""
	d.lastMessages = nil
	d.mu.Unlock()

	resp, err := call()

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		if errors.Is(err, model.ErrTransport) {
			d.lastError = err.Error()
		}
		return nil, err
	}

	d.lastMessages = append([]string{}, resp.Messages...)
	return resp, nil
}

// LastError returns the transport error text of the last call, empty if it had none.
func (d *Diagnostics) LastError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastError
}

// LastMessages returns the provider messages of the last call.
func (d *Diagnostics) LastMessages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.lastMessages...)
}
