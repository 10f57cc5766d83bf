package conoha_test

import (
	"testing"

	"github.com/keika299/conoha/pkg/conoha"
	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "0", "false", "FALSE", " false "} {
		assert.False(t, conoha.IsTruthy(value), "value %q", value)
	}

	for _, value := range []string{"1", "true", "yes", "on", "anything"} {
		assert.True(t, conoha.IsTruthy(value), "value %q", value)
	}
}

//nolint:paralleltest // t.Setenv cannot be combined with t.Parallel
func TestTestModeFromEnv(t *testing.T) {
	t.Setenv(conoha.TestModeEnv, "")
	assert.False(t, conoha.TestModeFromEnv())

	t.Setenv(conoha.TestModeEnv, "0")
	assert.False(t, conoha.TestModeFromEnv())

	t.Setenv(conoha.TestModeEnv, "true")
	assert.True(t, conoha.TestModeFromEnv())
}
