package io

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jiffybox/internal/model"
)

func TestBoxSpecYAMLRepository_GetBoxSpec(t *testing.T) {
	backupID := 7
	dist := "debian_bookworm_64bit"
	useKey := true

	tests := map[string]struct {
		fs      fstest.MapFS
		path    string
		expSpec model.BoxSpec
		expErr  bool
		errMsg  string
	}{
		"Minimal box spec should load successfully": {
			fs: fstest.MapFS{
				"box.yaml": &fstest.MapFile{
					Data: []byte(`name: web-1
plan_id: 10
`),
				},
			},
			path: "box.yaml",
			expSpec: model.BoxSpec{
				Name:   "web-1",
				PlanID: 10,
			},
		},
		"Full box spec should load successfully": {
			fs: fstest.MapFS{
				"box.yaml": &fstest.MapFile{
					Data: []byte(`name: web-1
plan_id: 10
backup_id: 7
distribution: debian_bookworm_64bit
use_ssh_key: true
metadata:
  team: ops
`),
				},
			},
			path: "box.yaml",
			expSpec: model.BoxSpec{
				Name:         "web-1",
				PlanID:       10,
				BackupID:     &backupID,
				Distribution: &dist,
				UseSSHKey:    &useKey,
				Metadata:     map[string]any{"team": "ops"},
			},
		},
		"Box spec without plan should return error": {
			fs: fstest.MapFS{
				"box.yaml": &fstest.MapFile{
					Data: []byte(`name: web-1
`),
				},
			},
			path:   "box.yaml",
			expErr: true,
			errMsg: "invalid box spec",
		},
		"Missing file should return error": {
			fs:     fstest.MapFS{},
			path:   "nonexistent.yaml",
			expErr: true,
			errMsg: "reading box spec file",
		},
		"Invalid YAML should return error": {
			fs: fstest.MapFS{
				"invalid.yaml": &fstest.MapFile{
					Data: []byte(`invalid: yaml: content: {}`),
				},
			},
			path:   "invalid.yaml",
			expErr: true,
			errMsg: "parsing YAML",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewBoxSpecYAMLRepository(tc.fs)
			spec, err := repo.GetBoxSpec(context.Background(), tc.path)

			if tc.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expSpec, spec)
		})
	}
}

func TestBoxSpecYAMLRepository_GetBoxSpec_ContextCancellation(t *testing.T) {
	fs := fstest.MapFS{
		"box.yaml": &fstest.MapFile{
			Data: []byte(`name: web-1
plan_id: 10
`),
		},
	}

	repo := NewBoxSpecYAMLRepository(fs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetBoxSpec(ctx, "box.yaml")
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}
