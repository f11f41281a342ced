package fake

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slok/jiffybox/internal/box"
	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// DefaultPlans are the plans a fake provider offers when none are configured.
var DefaultPlans = []model.Plan{
	{ID: 10, Name: "CloudLevel 1", CPUs: 2, RAMMB: 2048, DiskSizeMB: 81920, PricePerHour: 0.02, PricePerHourFrozen: 0.005},
	{ID: 20, Name: "CloudLevel 2", CPUs: 4, RAMMB: 4096, DiskSizeMB: 163840, PricePerHour: 0.04, PricePerHourFrozen: 0.01},
	{ID: 30, Name: "CloudLevel 3", CPUs: 6, RAMMB: 8192, DiskSizeMB: 327680, PricePerHour: 0.08, PricePerHourFrozen: 0.02},
}

// DefaultDistributions are the distributions a fake provider offers when none are configured.
var DefaultDistributions = []model.Distribution{
	{Key: "centos_7_64bit", Name: "CentOS 7 64-Bit", MinDiskSizeMB: 1024, DefaultKernel: "xen-current-x86_64", RootDiskMode: "ro"},
	{Key: "debian_bookworm_64bit", Name: "Debian Bookworm 64-Bit", MinDiskSizeMB: 1024, DefaultKernel: "xen-current-x86_64", RootDiskMode: "ro"},
	{Key: "ubuntu_24_04_64bit", Name: "Ubuntu 24.04 64-Bit", MinDiskSizeMB: 2048, DefaultKernel: "xen-current-x86_64", RootDiskMode: "ro"},
}

// ProviderConfig is the configuration for the fake provider.
type ProviderConfig struct {
	Plans         []model.Plan
	Distributions []model.Distribution
	// TimeNow is used to set the creation time of boxes.
	TimeNow func() time.Time
	Logger  log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.Plans == nil {
		c.Plans = DefaultPlans
	}

	if c.Distributions == nil {
		c.Distributions = DefaultDistributions
	}

	if c.TimeNow == nil {
		c.TimeNow = func() time.Time { return time.Now().UTC() }
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "provider.Fake"})

	return nil
}

// Provider is a fake implementation of the provider.Provider interface.
// It keeps boxes in memory and applies the same status rules as the real
// provider, transitions settle immediately.
type Provider struct {
	plans   []model.Plan
	dists   []model.Distribution
	timeNow func() time.Time
	logger  log.Logger

	mu     sync.RWMutex
	boxes  map[int]*model.Box
	nextID int
}

var _ provider.Provider = &Provider{}

// NewProvider creates a new fake provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Provider{
		plans:   cfg.Plans,
		dists:   cfg.Distributions,
		timeNow: cfg.TimeNow,
		logger:  cfg.Logger,
		boxes:   map[int]*model.Box{},
		nextID:  1,
	}, nil
}

// SetStatus forces the status of a box, used to simulate provider side changes.
func (p *Provider) SetStatus(id int, status model.BoxStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.boxes[id]
	if !ok {
		return fmt.Errorf("box %d: %w", id, model.ErrNotFound)
	}
	b.Status = status

	return nil
}

func (p *Provider) CreateBox(ctx context.Context, spec model.BoxSpec) (*model.Result[*model.Box], error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid box spec: %w", err)
	}

	plan, ok := p.plan(spec.PlanID)
	if !ok {
		return nil, fmt.Errorf("plan %d doesn't exist: %w", spec.PlanID, model.ErrRefused)
	}
	if spec.Distribution != nil && !p.hasDistribution(*spec.Distribution) {
		return nil, fmt.Errorf("distribution %q doesn't exist: %w", *spec.Distribution, model.ErrRefused)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.newBox(spec.Name, plan)
	b.Metadata = maps.Clone(spec.Metadata)

	messages := []string{}
	if spec.Password == nil && (spec.UseSSHKey == nil || !*spec.UseSSHKey) {
		messages = append(messages, "no password or ssh key set, the box can only be accessed with the console")
	}
	p.logger.Infof("Created fake box %d (name: %s)", b.ID, b.Name)

	return &model.Result[*model.Box]{Value: copyBox(b), Messages: messages}, nil
}

func (p *Provider) CloneBox(ctx context.Context, id int, name string, planID int) (*model.Result[*model.Box], error) {
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", model.ErrNotValid)
	}

	plan, ok := p.plan(planID)
	if !ok {
		return nil, fmt.Errorf("plan %d doesn't exist: %w", planID, model.ErrRefused)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	src, ok := p.boxes[id]
	if !ok {
		return nil, fmt.Errorf("box %d: %w", id, model.ErrNotFound)
	}

	b := p.newBox(name, plan)
	b.Metadata = maps.Clone(src.Metadata)
	p.logger.Infof("Cloned fake box %d into %d", id, b.ID)

	return &model.Result[*model.Box]{Value: copyBox(b), Messages: []string{}}, nil
}

func (p *Provider) DeleteBox(ctx context.Context, id int) (*model.Result[bool], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.boxes[id]
	if !ok {
		return nil, fmt.Errorf("box %d: %w", id, model.ErrNotFound)
	}
	if b.Running {
		return nil, fmt.Errorf("box %d is running, stop it first: %w", id, model.ErrRefused)
	}

	delete(p.boxes, id)
	p.logger.Infof("Deleted fake box %d", id)

	return &model.Result[bool]{Value: true, Messages: []string{}}, nil
}

func (p *Provider) GetBox(ctx context.Context, id int) (*model.Result[*model.Box], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	b, ok := p.boxes[id]
	if !ok {
		return nil, fmt.Errorf("box %d: %w", id, model.ErrNotFound)
	}

	return &model.Result[*model.Box]{Value: copyBox(b), Messages: []string{}}, nil
}

func (p *Provider) ListBoxes(ctx context.Context) (*model.Result[[]model.Box], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	boxes := make([]model.Box, 0, len(p.boxes))
	for _, b := range p.boxes {
		boxes = append(boxes, *copyBox(b))
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].ID < boxes[j].ID })

	return &model.Result[[]model.Box]{Value: boxes, Messages: []string{}}, nil
}

func (p *Provider) Transition(ctx context.Context, id int, cmd model.StatusCommand, planID int) (*model.TransitionOutcome, error) {
	required, err := box.RequiredStatus(cmd)
	if err != nil {
		return nil, err
	}
	if cmd == model.StatusCommandThaw && planID <= 0 {
		return nil, fmt.Errorf("thaw needs a positive plan id: %w", model.ErrNotValid)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.boxes[id]
	if !ok {
		return nil, fmt.Errorf("box %d: %w", id, model.ErrNotFound)
	}

	outcome := &model.TransitionOutcome{
		Command:  cmd,
		Observed: b.Status,
		Messages: []string{},
	}

	if !box.CanTransition(b.Status, cmd) {
		outcome.State = model.TransitionRejected
		outcome.Reason = fmt.Sprintf("%s needs status %s, box %d is %s", cmd, required, id, b.Status)
		p.logger.Infof("Transition rejected: %s", outcome.Reason)
		return outcome, nil
	}

	switch cmd {
	case model.StatusCommandFreeze:
		b.Status = model.BoxStatusFrozen
		b.Running = false
	case model.StatusCommandThaw:
		plan, ok := p.plan(planID)
		if !ok {
			return nil, fmt.Errorf("plan %d doesn't exist: %w", planID, model.ErrRefused)
		}
		b.Status = model.BoxStatusReady
		b.Plan = plan
	case model.StatusCommandStart:
		b.Running = true
	case model.StatusCommandShutdown, model.StatusCommandPullPlug:
		b.Running = false
	}

	outcome.State = model.TransitionApplied
	outcome.Box = copyBox(b)
	p.logger.Infof("Applied %s to fake box %d", cmd, id)

	return outcome, nil
}

func (p *Provider) Backups(ctx context.Context, id int) (*model.Result[*model.BoxBackups], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	b, ok := p.boxes[id]
	if !ok {
		return nil, fmt.Errorf("box %d: %w", id, model.ErrNotFound)
	}

	// Fake boxes get a daily backup the day after creation.
	backups := &model.BoxBackups{}
	if daily := b.Created.Add(24 * time.Hour); !daily.After(p.timeNow()) {
		backups.Daily = &model.Backup{ID: fmt.Sprintf("daily-%d", id), Created: daily}
	}

	return &model.Result[*model.BoxBackups]{Value: backups, Messages: []string{}}, nil
}

func (p *Provider) Plans(ctx context.Context) (*model.Result[[]model.Plan], error) {
	return &model.Result[[]model.Plan]{Value: append([]model.Plan{}, p.plans...), Messages: []string{}}, nil
}

func (p *Provider) Distributions(ctx context.Context) (*model.Result[[]model.Distribution], error) {
	return &model.Result[[]model.Distribution]{Value: append([]model.Distribution{}, p.dists...), Messages: []string{}}, nil
}

func (p *Provider) IPs(ctx context.Context) (*model.Result[json.RawMessage], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ips := map[string]map[string][]string{}
	for _, b := range p.boxes {
		ips[fmt.Sprint(b.ID)] = map[string][]string{"public": b.PublicIPs, "private": b.PrivateIPs}
	}

	data, err := json.Marshal(ips)
	if err != nil {
		return nil, fmt.Errorf("could not encode ips: %w", err)
	}

	return &model.Result[json.RawMessage]{Value: data, Messages: []string{}}, nil
}

func (p *Provider) Doc(ctx context.Context, sub string) (*model.Result[json.RawMessage], error) {
	sub = strings.Trim(sub, "/")
	doc := map[string]string{"name": "fake", "description": "In memory JiffyBox provider."}
	if sub != "" {
		doc["name"] = sub
		doc["description"] = fmt.Sprintf("Documentation of %s.", sub)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not encode doc: %w", err)
	}

	return &model.Result[json.RawMessage]{Value: data, Messages: []string{}}, nil
}

// newBox requires the lock.
func (p *Provider) newBox(name string, plan model.Plan) *model.Box {
	id := p.nextID
	p.nextID++

	b := &model.Box{
		ID:         id,
		Name:       name,
		Status:     model.BoxStatusReady,
		Host:       "fake-host",
		Created:    p.timeNow(),
		Plan:       plan,
		PublicIPs:  []string{fmt.Sprintf("198.51.100.%d", id%254+1)},
		PrivateIPs: []string{fmt.Sprintf("10.0.0.%d", id%254+1)},
	}
	p.boxes[id] = b

	return b
}

func (p *Provider) plan(id int) (model.Plan, bool) {
	for _, pl := range p.plans {
		if pl.ID == id {
			return pl, true
		}
	}
	return model.Plan{}, false
}

func (p *Provider) hasDistribution(key string) bool {
	for _, d := range p.dists {
		if d.Key == key {
			return true
		}
	}
	return false
}

func copyBox(b *model.Box) *model.Box {
	c := *b
	c.PublicIPs = append([]string(nil), b.PublicIPs...)
	c.PrivateIPs = append([]string(nil), b.PrivateIPs...)
	c.Metadata = maps.Clone(b.Metadata)
	return &c
}
