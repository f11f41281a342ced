package box

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
)

// HandleConfig is the configuration of a box handle.
type HandleConfig struct {
	Invoker api.Invoker
	// ID is the box id, nil for boxes that don't exist yet.
	ID     *int
	Logger log.Logger
}

func (c *HandleConfig) defaults() error {
	if c.Invoker == nil {
		return fmt.Errorf("invoker is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "box.Handle"})

	return nil
}

// Handle identifies a single remote box and runs operations on it.
//
// A handle doesn't cache any box state, every status query goes to the provider.
// Creating a box doesn't assign the new id to the handle, callers take it from
// the create result and use SetID.
type Handle struct {
	invoker api.Invoker
	logger  log.Logger
	diag    api.Diagnostics

	mu sync.RWMutex
	id *int
}

// NewHandle returns a new box handle.
func NewHandle(cfg HandleConfig) (*Handle, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	h := &Handle{
		invoker: cfg.Invoker,
		logger:  cfg.Logger,
	}
	if cfg.ID != nil {
		h.SetID(*cfg.ID)
	}

	return h, nil
}

// ID returns the box id and if it's set.
func (h *Handle) ID() (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.id == nil {
		return 0, false
	}
	return *h.id, true
}

// SetID attaches the handle to an existing box.
func (h *Handle) SetID(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.id = &id
}

// LastError returns the transport error text of the last call.
func (h *Handle) LastError() string { return h.diag.LastError() }

// LastMessages returns the provider messages of the last call.
func (h *Handle) LastMessages() []string { return h.diag.LastMessages() }

// Create creates a new box.
func (h *Handle) Create(ctx context.Context, spec model.BoxSpec) (*api.Response, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid box spec: %w", err)
	}

	payload, err := createPayload(spec)
	if err != nil {
		return nil, err
	}

	h.logger.Debugf("Creating box %q with plan %d", spec.Name, spec.PlanID)
	resp, err := h.do(ctx, api.Request{
		Method:  http.MethodPost,
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create box: %w", err)
	}

	return resp, nil
}

// Clone creates a new box copying this one.
func (h *Handle) Clone(ctx context.Context, name string, planID int) (*api.Response, error) {
	id, err := h.requireID()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", model.ErrNotValid)
	}
	if planID <= 0 {
		return nil, fmt.Errorf("plan id must be positive: %w", model.ErrNotValid)
	}

	h.logger.Debugf("Cloning box %d as %q", id, name)
	resp, err := h.do(ctx, api.Request{
		Method: http.MethodPost,
		ID:     &id,
		Payload: map[string]string{
			"name":   name,
			"planid": strconv.Itoa(planID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not clone box %d: %w", id, err)
	}

	return resp, nil
}

// Delete deletes the box.
func (h *Handle) Delete(ctx context.Context) (*api.Response, error) {
	id, err := h.requireID()
	if err != nil {
		return nil, err
	}

	h.logger.Debugf("Deleting box %d", id)
	resp, err := h.do(ctx, api.Request{Method: http.MethodDelete, ID: &id})
	if err != nil {
		return nil, fmt.Errorf("could not delete box %d: %w", id, err)
	}

	return resp, nil
}

// Get returns the box record.
func (h *Handle) Get(ctx context.Context) (*api.Response, error) {
	id, err := h.requireID()
	if err != nil {
		return nil, err
	}

	resp, err := h.do(ctx, api.Request{Method: http.MethodGet, ID: &id})
	if err != nil {
		return nil, fmt.Errorf("could not get box %d: %w", id, err)
	}

	return resp, nil
}

// Status returns the current status of the box as reported by the provider.
func (h *Handle) Status(ctx context.Context) (model.BoxStatus, error) {
	resp, err := h.Get(ctx)
	if err != nil {
		return "", err
	}

	var rec struct {
		Status string `json:"status"`
	}
	if resp.IsNull() {
		return "", fmt.Errorf("box record missing: %w", model.ErrDecode)
	}
	if err := resp.Decode(&rec); err != nil {
		return "", fmt.Errorf("could not decode box status: %w", err)
	}
	if rec.Status == "" {
		return "", fmt.Errorf("box record without status: %w", model.ErrDecode)
	}

	return model.BoxStatus(rec.Status), nil
}

// Backups returns the backups of the box.
func (h *Handle) Backups(ctx context.Context) (*api.Response, error) {
	id, err := h.requireID()
	if err != nil {
		return nil, err
	}

	resp, err := h.do(ctx, api.Request{
		Method:     http.MethodGet,
		Collection: api.CollectionBackups,
		ID:         &id,
	})
	if err != nil {
		return nil, fmt.Errorf("could not get backups of box %d: %w", id, err)
	}

	return resp, nil
}

// Freeze freezes a ready box.
func (h *Handle) Freeze(ctx context.Context) (*Transition, error) {
	return h.Transition(ctx, model.StatusCommandFreeze, 0)
}

// Start starts a ready box.
func (h *Handle) Start(ctx context.Context) (*Transition, error) {
	return h.Transition(ctx, model.StatusCommandStart, 0)
}

// Stop shuts down a ready box.
func (h *Handle) Stop(ctx context.Context) (*Transition, error) {
	return h.Transition(ctx, model.StatusCommandShutdown, 0)
}

// PullPlug hard powers off a ready box.
func (h *Handle) PullPlug(ctx context.Context) (*Transition, error) {
	return h.Transition(ctx, model.StatusCommandPullPlug, 0)
}

// Thaw thaws a frozen box into the given plan.
func (h *Handle) Thaw(ctx context.Context, planID int) (*Transition, error) {
	return h.Transition(ctx, model.StatusCommandThaw, planID)
}

func (h *Handle) do(ctx context.Context, req api.Request) (*api.Response, error) {
	return h.diag.Track(func() (*api.Response, error) {
		return h.invoker.Do(ctx, req)
	})
}

func (h *Handle) requireID() (int, error) {
	id, ok := h.ID()
	if !ok {
		return 0, fmt.Errorf("box id is not set: %w", model.ErrNotValid)
	}
	return id, nil
}

// createPayload only includes the optional fields that are set.
func createPayload(spec model.BoxSpec) (map[string]string, error) {
	payload := map[string]string{
		"name":   spec.Name,
		"planid": strconv.Itoa(spec.PlanID),
	}

	if spec.BackupID != nil {
		payload["backupid"] = strconv.Itoa(*spec.BackupID)
	}
	if spec.Distribution != nil {
		payload["distribution"] = *spec.Distribution
	}
	if spec.Password != nil {
		payload["password"] = *spec.Password
	}
	if spec.UseSSHKey != nil {
		payload["use_sshkey"] = formBool(*spec.UseSSHKey)
	}
	if spec.Metadata != nil {
		data, err := json.Marshal(spec.Metadata)
		if err != nil {
			return nil, fmt.Errorf("could not encode metadata: %w: %w", model.ErrNotValid, err)
		}
		payload["metadata"] = string(data)
	}

	return payload, nil
}

func formBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
