package conohaclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keika299/conoha/pkg/conoha"
	"github.com/keika299/conoha/pkg/conohaclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client from region", func(t *testing.T) {
		t.Parallel()

		client, err := conohaclient.New(context.Background(), &conoha.Config{
			Region:   "tyo1",
			TenantID: "tenant",
		})
		require.NoError(t, err)
		assert.Equal(t, "tenant", client.TenantID())
		assert.NotNil(t, client.Account())
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := conohaclient.New(context.Background(), nil)
		require.ErrorIs(t, err, conoha.ErrConfigRequired)
	})

	t.Run("requires endpoint or region", func(t *testing.T) {
		t.Parallel()

		_, err := conohaclient.New(context.Background(), &conoha.Config{TenantID: "tenant"})
		require.ErrorIs(t, err, conoha.ErrAccountEndpointRequired)
	})

	t.Run("requires tenant", func(t *testing.T) {
		t.Parallel()

		_, err := conohaclient.New(context.Background(), &conoha.Config{Region: "tyo1"})
		require.ErrorIs(t, err, conoha.ErrTenantIDRequired)
	})

	t.Run("does not modify config", func(t *testing.T) {
		t.Parallel()

		config := &conoha.Config{AccountEndpoint: "account.example.com/", TenantID: "tenant"}

		_, err := conohaclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "account.example.com/", config.AccountEndpoint)
	})
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	paths := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		paths <- request.URL.Path

		_, _ = writer.Write([]byte(`{"version": {"id": "v1.0", "status": "CURRENT"}}`))
	}))
	defer server.Close()

	client, err := conohaclient.NewWithEndpoint(context.Background(), server.URL+"/", "tenant", "token")
	require.NoError(t, err)

	doc, err := client.Account().GetVersionDetail(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v1", <-paths)

	version, ok := doc["version"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "CURRENT", version["status"])
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := conohaclient.NewWithToken(context.Background(), "tyo2", "tenant", "token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestAccountEndpoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://account.tyo1.conoha.io", conohaclient.AccountEndpoint("tyo1"))
	assert.Equal(t, "https://account.sin1.conoha.io", conohaclient.AccountEndpoint("sin1"))
}

//nolint:paralleltest // t.Setenv cannot be combined with t.Parallel
func TestNewFromEnv(t *testing.T) {
	t.Setenv(conoha.TestModeEnv, "1")

	client, err := conohaclient.NewFromEnv(context.Background(), &conoha.Config{
		AccountEndpoint: "https://account.example.invalid",
		TenantID:        "tenant",
	})
	require.NoError(t, err)

	doc, err := client.Account().GetNotification(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "checkValue", doc["checkKey"])
}
