//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/keika299/conoha/pkg/conoha"
	"github.com/keika299/conoha/pkg/conohaclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Region   string
	Endpoint string
	TenantID string
	Token    string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	region := os.Getenv("CONOHA_REGION")
	if region == "" {
		region = "tyo1"
	}

	return &TestConfig{
		Region:   region,
		Endpoint: os.Getenv("CONOHA_ACCOUNT_ENDPOINT"),
		TenantID: os.Getenv("CONOHA_TENANT_ID"),
		Token:    os.Getenv("CONOHA_TOKEN"),
		Verbose:  os.Getenv("CONOHA_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test when no tenant or token is configured.
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.TenantID == "" || c.Token == "" {
		t.Skip("CONOHA_TENANT_ID and CONOHA_TOKEN are required for integration tests")
	}
}

// NewClient builds a client against the live API.
func (c *TestConfig) NewClient(t *testing.T) conoha.Client {
	t.Helper()

	config := &conoha.Config{
		Region:          c.Region,
		AccountEndpoint: c.Endpoint,
		TenantID:        c.TenantID,
		Token:           c.Token,
	}

	if c.Verbose {
		config.Debug = true
		config.Logger = testLogger{t: t}
	}

	client, err := conohaclient.New(context.Background(), config)
	require.NoError(t, err)

	return client
}

// testLogger writes client logs to the test log.
type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, fields map[string]interface{}) {
	l.t.Logf("DEBUG %s %v", msg, fields)
}

func (l testLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO %s %v", msg, fields)
}

func (l testLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN %s %v", msg, fields)
}

func (l testLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR %s %v", msg, fields)
}
