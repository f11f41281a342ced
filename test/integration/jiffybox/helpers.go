package jiffybox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/slok/jiffybox/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary       string
	Token        string
	PlanID       int
	Distribution string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "jiffybox"
	}

	// go test changes the CWD to the test package directory, relative paths
	// would be ambiguous.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("JIFFYBOX_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("jiffybox binary not found at %q: %w", c.Binary, err)
	}

	if c.Token == "" {
		return fmt.Errorf("API token is required (JIFFYBOX_INTEGRATION_TOKEN)")
	}

	if c.PlanID <= 0 {
		return fmt.Errorf("plan id is required (JIFFYBOX_INTEGRATION_PLAN_ID)")
	}

	if c.Distribution == "" {
		c.Distribution = "debian_bookworm_64bit"
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation   = "JIFFYBOX_INTEGRATION"
		envBinary       = "JIFFYBOX_INTEGRATION_BINARY"
		envToken        = "JIFFYBOX_INTEGRATION_TOKEN"
		envPlanID       = "JIFFYBOX_INTEGRATION_PLAN_ID"
		envDistribution = "JIFFYBOX_INTEGRATION_DISTRIBUTION"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	planID, _ := strconv.Atoi(os.Getenv(envPlanID))
	c := Config{
		Binary:       os.Getenv(envBinary),
		Token:        os.Getenv(envToken),
		PlanID:       planID,
		Distribution: os.Getenv(envDistribution),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunCmd runs a jiffybox command with an isolated journal, the token is passed
// through the environment.
func RunCmd(ctx context.Context, config Config, journalPath, cmdArgs string) (stdout, stderr []byte, err error) {
	args := fmt.Sprintf("--verify-tls --journal-path %s %s", journalPath, cmdArgs)
	env := []string{
		"JIFFYBOX_TOKEN=" + config.Token,
	}

	return testutils.RunJiffyBox(ctx, env, config.Binary, args, true)
}

// RunCreate creates a box.
func RunCreate(ctx context.Context, config Config, journalPath, name string) (stdout, stderr []byte, err error) {
	args := fmt.Sprintf("create --format json --name %s --plan-id %d --distribution %s --use-ssh-key", name, config.PlanID, config.Distribution)
	return RunCmd(ctx, config, journalPath, args)
}

// RunStatus gets the status of a box in JSON format.
func RunStatus(ctx context.Context, config Config, journalPath, name string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, journalPath, fmt.Sprintf("--format json status %s", name))
}

// RunList lists boxes in JSON format.
func RunList(ctx context.Context, config Config, journalPath string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, journalPath, "--format json list")
}

// RunLifecycle sends a lifecycle command (start, stop, freeze, pullplug) to a box.
func RunLifecycle(ctx context.Context, config Config, journalPath, command, name string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, journalPath, fmt.Sprintf("--format json %s %s", command, name))
}

// RunRm removes a box.
func RunRm(ctx context.Context, config Config, journalPath, name string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, journalPath, fmt.Sprintf("rm %s", name))
}

// RunHistory lists the journal in JSON format.
func RunHistory(ctx context.Context, config Config, journalPath string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, journalPath, "--format json history")
}
