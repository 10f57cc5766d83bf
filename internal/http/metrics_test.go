package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	conohahttp "github.com/keika299/conoha/internal/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/missing" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	metrics, err := conohahttp.NewMetrics(registry)
	require.NoError(t, err)

	client := conohahttp.NewClient(conohahttp.WithMetrics(metrics))
	base := conohahttp.NewRequest().WithBaseURI(server.URL)

	_, err = client.Do(context.Background(), base.WithURI("/v1"))
	require.NoError(t, err)
	_, err = client.Do(context.Background(), base.WithURI("/v1"))
	require.NoError(t, err)
	_, err = client.Do(context.Background(), base.WithURI("/missing"))
	require.Error(t, err)

	expected := `
# HELP conoha_client_requests_total Total number of API requests by method and outcome.
# TYPE conoha_client_requests_total counter
conoha_client_requests_total{method="GET",outcome="http_status"} 1
conoha_client_requests_total{method="GET",outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "conoha_client_requests_total"))
	count, err := testutil.GatherAndCount(registry, "conoha_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	_, err := conohahttp.NewMetrics(registry)
	require.NoError(t, err)

	_, err = conohahttp.NewMetrics(registry)
	assert.Error(t, err)
}

func TestMetrics_NonStandardMethod(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics, err := conohahttp.NewMetrics(registry)
	require.NoError(t, err)

	client := conohahttp.NewClient(conohahttp.WithTestMode(true), conohahttp.WithMetrics(metrics))
	base := conohahttp.NewRequest().WithBaseURI("https://account.tyo1.conoha.io").WithURI("/v1")

	for _, method := range []string{"get", "purge", "get all", "x-custom"} {
		_, err = client.Do(context.Background(), base.WithMethod(method))
		require.NoError(t, err)
	}

	expected := `
# HELP conoha_client_requests_total Total number of API requests by method and outcome.
# TYPE conoha_client_requests_total counter
conoha_client_requests_total{method="GET",outcome="success"} 1
conoha_client_requests_total{method="other",outcome="success"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "conoha_client_requests_total"))
}
