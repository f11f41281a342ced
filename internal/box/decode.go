package box

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/slok/jiffybox/internal/api"
	"github.com/slok/jiffybox/internal/catalog"
	"github.com/slok/jiffybox/internal/model"
)

// --- JSON wire types (private) ---

type boxJSON struct {
	ID                  int             `json:"id"`
	Name                string          `json:"name"`
	Status              string          `json:"status"`
	Running             bool            `json:"running"`
	Host                string          `json:"host"`
	Created             int64           `json:"created"`
	RecoveryModeActive  bool            `json:"recoverymodeActive"`
	ManualBackupRunning bool            `json:"manualBackupRunning"`
	IsBeingCopied       bool            `json:"isBeingCopied"`
	Plan                json.RawMessage `json:"plan"`
	IPs                 json.RawMessage `json:"ips"`
	Metadata            json.RawMessage `json:"metadata"`
}

type ipsJSON struct {
	Public  []string `json:"public"`
	Private []string `json:"private"`
}

type backupJSON struct {
	ID      flexString `json:"id"`
	Created int64      `json:"created"`
}

type backupsJSON struct {
	Daily    json.RawMessage `json:"daily"`
	Weekly   json.RawMessage `json:"weekly"`
	Biweekly json.RawMessage `json:"biweekly"`
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	*f = flexString(data)
	return nil
}

func (b boxJSON) toModel() (*model.Box, error) {
	box := &model.Box{
		ID:                  b.ID,
		Name:                b.Name,
		Status:              model.BoxStatus(b.Status),
		Running:             b.Running,
		Host:                b.Host,
		Created:             unixTime(b.Created),
		RecoveryModeActive:  b.RecoveryModeActive,
		ManualBackupRunning: b.ManualBackupRunning,
		IsBeingCopied:       b.IsBeingCopied,
	}

	var plan catalog.PlanJSON
	if err := api.DecodeObject(b.Plan, &plan); err != nil {
		return nil, fmt.Errorf("could not decode plan: %w", err)
	}
	box.Plan = plan.ToModel()

	var ips ipsJSON
	if err := api.DecodeObject(b.IPs, &ips); err != nil {
		return nil, fmt.Errorf("could not decode ips: %w", err)
	}
	box.PublicIPs = ips.Public
	box.PrivateIPs = ips.Private

	if err := api.DecodeObject(b.Metadata, &box.Metadata); err != nil {
		return nil, fmt.Errorf("could not decode metadata: %w", err)
	}

	return box, nil
}

func unixTime(ts int64) time.Time {
	if ts <= 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// DecodeBox decodes a single box record result.
func DecodeBox(resp *api.Response) (*model.Box, error) {
	if resp.IsNull() {
		return nil, fmt.Errorf("box record missing: %w", model.ErrDecode)
	}
	return decodeBoxRaw(resp.Result)
}

func decodeBoxRaw(raw json.RawMessage) (*model.Box, error) {
	var b boxJSON
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("could not decode box: %w: %w", model.ErrDecode, err)
	}
	return b.toModel()
}

// DecodeBoxList decodes a box collection result, sorted by id.
func DecodeBoxList(resp *api.Response) ([]model.Box, error) {
	items, err := api.DecodeItems(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("could not decode boxes: %w", err)
	}

	boxes := make([]model.Box, 0, len(items))
	for key, raw := range items {
		b, err := decodeBoxRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("could not decode box %s: %w", key, err)
		}
		boxes = append(boxes, *b)
	}

	sort.Slice(boxes, func(i, j int) bool { return boxes[i].ID < boxes[j].ID })

	return boxes, nil
}

// DecodeBackups decodes the backups result of a single box.
func DecodeBackups(resp *api.Response) (*model.BoxBackups, error) {
	var bj backupsJSON
	if err := api.DecodeObject(resp.Result, &bj); err != nil {
		return nil, fmt.Errorf("could not decode backups: %w", err)
	}

	var (
		backups model.BoxBackups
		err     error
	)
	if backups.Daily, err = decodeBackup(bj.Daily); err != nil {
		return nil, fmt.Errorf("could not decode daily backup: %w", err)
	}
	if backups.Weekly, err = decodeBackup(bj.Weekly); err != nil {
		return nil, fmt.Errorf("could not decode weekly backup: %w", err)
	}
	if backups.Biweekly, err = decodeBackup(bj.Biweekly); err != nil {
		return nil, fmt.Errorf("could not decode biweekly backup: %w", err)
	}

	return &backups, nil
}

func decodeBackup(raw json.RawMessage) (*model.Backup, error) {
	var b backupJSON
	if err := api.DecodeObject(raw, &b); err != nil {
		return nil, err
	}
	if b.ID == "" {
		return nil, nil
	}

	return &model.Backup{
		ID:      string(b.ID),
		Created: unixTime(b.Created),
	}, nil
}
