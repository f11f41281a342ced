package catalog

import (
	"fmt"
	"sort"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/model"
)

// PlanJSON is the wire representation of a plan, boxes embed it too.
type PlanJSON struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	DiskSizeInMB       int     `json:"diskSizeInMB"`
	RAMInMB            int     `json:"ramInMB"`
	PricePerHour       float64 `json:"pricePerHour"`
	PricePerHourFrozen float64 `json:"pricePerHourFrozen"`
	CPUs               int     `json:"cpus"`
}

// ToModel converts the wire plan to the domain plan.
func (p PlanJSON) ToModel() model.Plan {
	return model.Plan{
		ID:                 p.ID,
		Name:               p.Name,
		CPUs:               p.CPUs,
		RAMMB:              p.RAMInMB,
		DiskSizeMB:         p.DiskSizeInMB,
		PricePerHour:       p.PricePerHour,
		PricePerHourFrozen: p.PricePerHourFrozen,
	}
}

type distributionJSON struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	MinDiskSizeMB int    `json:"minDiskSizeMB"`
	DefaultKernel string `json:"defaultKernel"`
	RootdiskMode  string `json:"rootdiskMode"`
}

// DecodePlans decodes a plans result, sorted by id.
func DecodePlans(resp *api.Response) ([]model.Plan, error) {
	items, err := api.DecodeItems(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("could not decode plans: %w", err)
	}

	plans := make([]model.Plan, 0, len(items))
	for key, raw := range items {
		var p PlanJSON
		if err := api.DecodeObject(raw, &p); err != nil {
			return nil, fmt.Errorf("could not decode plan %s: %w", key, err)
		}
		plans = append(plans, p.ToModel())
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })

	return plans, nil
}

// DecodeDistributions decodes a distributions result, sorted by key.
func DecodeDistributions(resp *api.Response) ([]model.Distribution, error) {
	items, err := api.DecodeItems(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("could not decode distributions: %w", err)
	}

	dists := make([]model.Distribution, 0, len(items))
	for key, raw := range items {
		var d distributionJSON
		if err := api.DecodeObject(raw, &d); err != nil {
			return nil, fmt.Errorf("could not decode distribution %s: %w", key, err)
		}

		// Distributions are keyed by their key, the body doesn't always repeat it.
		if d.Key == "" {
			d.Key = key
		}

		dists = append(dists, model.Distribution{
			Key:           d.Key,
			Name:          d.Name,
			MinDiskSizeMB: d.MinDiskSizeMB,
			DefaultKernel: d.DefaultKernel,
			RootDiskMode:  d.RootdiskMode,
		})
	}

	sort.Slice(dists, func(i, j int) bool { return dists[i].Key < dists[j].Key })

	return dists, nil
}
