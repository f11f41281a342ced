package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdklib "github.com/slok/jiffybox/pkg/lib"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Token        string
	BaseURL      string
	PlanID       int
	ThawPlanID   int
	Distribution string
}

func (c *Config) defaults() error {
	if c.Token == "" {
		return fmt.Errorf("API token is required (JIFFYBOX_INTEGRATION_TOKEN)")
	}

	if c.PlanID <= 0 {
		return fmt.Errorf("plan id is required (JIFFYBOX_INTEGRATION_PLAN_ID)")
	}

	if c.ThawPlanID <= 0 {
		c.ThawPlanID = c.PlanID
	}

	if c.Distribution == "" {
		c.Distribution = "debian_bookworm_64bit"
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation   = "JIFFYBOX_INTEGRATION"
		envToken        = "JIFFYBOX_INTEGRATION_TOKEN"
		envBaseURL      = "JIFFYBOX_INTEGRATION_API_URL"
		envPlanID       = "JIFFYBOX_INTEGRATION_PLAN_ID"
		envThawPlanID   = "JIFFYBOX_INTEGRATION_THAW_PLAN_ID"
		envDistribution = "JIFFYBOX_INTEGRATION_DISTRIBUTION"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	planID, _ := strconv.Atoi(os.Getenv(envPlanID))
	thawPlanID, _ := strconv.Atoi(os.Getenv(envThawPlanID))
	c := Config{
		Token:        os.Getenv(envToken),
		BaseURL:      os.Getenv(envBaseURL),
		PlanID:       planID,
		ThawPlanID:   thawPlanID,
		Distribution: os.Getenv(envDistribution),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// UniqueName generates a unique box name for test isolation.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// NewTestClient creates an SDK client against the real API with a temp journal.
func NewTestClient(t *testing.T, config Config) *sdklib.Client {
	t.Helper()

	client, err := sdklib.New(context.Background(), sdklib.Config{
		Token:       config.Token,
		BaseURL:     config.BaseURL,
		VerifyTLS:   true,
		JournalPath: filepath.Join(t.TempDir(), "journal.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// CleanupBox registers a cleanup function that stops and removes a box.
func CleanupBox(t *testing.T, client *sdklib.Client, name string) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		// Best effort cleanup.
		_, _ = client.StopBox(ctx, name)
		_ = WaitForStatus(ctx, client, name, sdklib.BoxStatusReady, false)
		_, _ = client.RemoveBox(ctx, name)
	})
}

// WaitForStatus polls the box until it has the wanted status and running flag.
func WaitForStatus(ctx context.Context, client *sdklib.Client, name string, status sdklib.BoxStatus, running bool) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		res, err := client.GetBox(ctx, name)
		if err == nil && res.Value.Status == status && res.Value.Running == running {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("box %s didn't reach status %s (running: %t): %w", name, status, running, ctx.Err())
		case <-ticker.C:
		}
	}
}
