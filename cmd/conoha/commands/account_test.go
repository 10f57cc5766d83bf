package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keika299/conoha/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewAccountCommand(t *testing.T) {
	cmd := NewAccountCommand()
	assert.Equal(t, "account", cmd.Use)
	assert.Equal(t, []string{"acct"}, cmd.Aliases)
	assert.Equal(t, "Read account information", cmd.Short)

	expected := []string{
		"version", "order-items", "order-item", "products", "payment-history", "payment-summary",
		"invoices", "invoice", "notifications", "notification", "mark-notification",
		"object-storage-requests", "object-storage-size",
	}

	assert.Len(t, cmd.Commands(), len(expected))

	for _, name := range expected {
		subcmd := findSubcommand(cmd, name)
		if assert.NotNil(t, subcmd, "subcommand %s should exist", name) {
			assert.NotNil(t, subcmd.RunE)
			assert.NotNil(t, subcmd.Args)
		}
	}
}

func TestAccountListCommands_Flags(t *testing.T) {
	cmd := NewAccountCommand()

	for _, name := range []string{"invoices", "notifications"} {
		subcmd := findSubcommand(cmd, name)
		require.NotNil(t, subcmd)
		assert.NotNil(t, subcmd.Flags().Lookup("offset"), "%s --offset", name)
		assert.NotNil(t, subcmd.Flags().Lookup("limit"), "%s --limit", name)
	}

	for _, name := range []string{"object-storage-requests", "object-storage-size"} {
		subcmd := findSubcommand(cmd, name)
		require.NotNil(t, subcmd)

		for _, flagName := range []string{"start", "end", "mode"} {
			assert.NotNil(t, subcmd.Flags().Lookup(flagName), "%s --%s", name, flagName)
		}
	}

	products := findSubcommand(cmd, "products")
	require.NotNil(t, products)
	assert.NotNil(t, products.Flags().Lookup("service"))

	mark := findSubcommand(cmd, "mark-notification")
	require.NotNil(t, mark)
	assert.Equal(t, "Read", mark.Flags().Lookup("status").DefValue)
}

func TestAccountCommand_TestMode(t *testing.T) {
	setViper(t, map[string]interface{}{
		KeyTenantID: "tenant",
		KeyTestMode: "1",
		KeyOutput:   constants.FormatJSON,
	})

	stdout, _, err := executeCommand(NewAccountCommand(), "payment-summary")
	require.NoError(t, err)

	var doc map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "checkValue", doc["checkKey"])
}

func TestAccountCommand_TableOutput(t *testing.T) {
	setViper(t, map[string]interface{}{
		KeyTenantID: "tenant",
		KeyTestMode: "true",
		KeyOutput:   constants.FormatTable,
	})

	stdout, _, err := executeCommand(NewAccountCommand(), "order-items")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Order Items:")
	assert.Contains(t, stdout, "checkValue")
	assert.Contains(t, stdout, "access.token.id")
	assert.Contains(t, stdout, constants.FixtureTokenID)
}

func TestAccountCommand_AgainstServer(t *testing.T) {
	type seenRequest struct {
		method string
		uri    string
		token  string
		body   string
	}

	requests := make(chan seenRequest, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}

		_ = json.NewDecoder(r.Body).Decode(&body)

		encoded, _ := json.Marshal(body)

		requests <- seenRequest{
			method: r.Method,
			uri:    r.URL.RequestURI(),
			token:  r.Header.Get("X-Auth-Token"),
			body:   string(encoded),
		}

		_, _ = w.Write([]byte(`{"billing_invoices": [{"invoice_id": 1234, "bill_plus_tax": 540}]}`))
	}))
	defer server.Close()

	setViper(t, map[string]interface{}{
		KeyAccountEndpoint: server.URL,
		KeyTenantID:        "tenant",
		KeyToken:           "secret-token",
		KeyOutput:          constants.FormatYAML,
	})

	t.Run("list with window", func(t *testing.T) {
		stdout, _, err := executeCommand(NewAccountCommand(), "invoices", "--offset", "2", "--limit", "3")
		require.NoError(t, err)

		seen := <-requests
		assert.Equal(t, "GET", seen.method)
		assert.Equal(t, "/v1/tenant/billing-invoices?offset=2&limit=3", seen.uri)
		assert.Equal(t, "secret-token", seen.token)

		var doc map[string]interface{}

		require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))

		invoices, ok := doc["billing_invoices"].([]interface{})
		require.True(t, ok)
		assert.Len(t, invoices, 1)
	})

	t.Run("mark notification", func(t *testing.T) {
		_, _, err := executeCommand(NewAccountCommand(), "mark-notification", "42", "--status", "ReadTitleOnly")
		require.NoError(t, err)

		seen := <-requests
		assert.Equal(t, "PUT", seen.method)
		assert.Equal(t, "/v1/tenant/notifications/42", seen.uri)
		assert.JSONEq(t, `{"notification": {"read_status": "ReadTitleOnly"}}`, seen.body)
	})

	t.Run("object storage size", func(t *testing.T) {
		_, _, err := executeCommand(NewAccountCommand(), "object-storage-size", "--start", "100", "--end", "200", "--mode", "min")
		require.NoError(t, err)

		seen := <-requests
		assert.Equal(t, "/v1/tenant/object-storage/rrd/size?start_date_raw=100&end_date_raw=200&mode=min", seen.uri)
	})

	t.Run("products by service", func(t *testing.T) {
		_, _, err := executeCommand(NewAccountCommand(), "products", "--service", "VPS")
		require.NoError(t, err)

		seen := <-requests
		assert.Equal(t, "/v1/tenant/product-items?service_name=VPS", seen.uri)
	})
}

func TestAccountCommand_Validation(t *testing.T) {
	t.Run("invalid read status", func(t *testing.T) {
		setViper(t, map[string]interface{}{KeyTenantID: "tenant", KeyTestMode: "1"})

		_, _, err := executeCommand(NewAccountCommand(), "mark-notification", "42", "--status", "Archived")
		require.ErrorIs(t, err, constants.ErrInvalidReadStatus)
	})

	t.Run("invalid rrd mode", func(t *testing.T) {
		setViper(t, map[string]interface{}{KeyTenantID: "tenant", KeyTestMode: "1"})

		_, _, err := executeCommand(NewAccountCommand(), "object-storage-requests", "--mode", "median")
		require.ErrorIs(t, err, constants.ErrInvalidRRDMode)
	})

	t.Run("invalid output", func(t *testing.T) {
		setViper(t, map[string]interface{}{KeyTenantID: "tenant", KeyTestMode: "1", KeyOutput: "xml"})

		_, _, err := executeCommand(NewAccountCommand(), "order-items")
		require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)
	})

	t.Run("missing tenant", func(t *testing.T) {
		setViper(t, map[string]interface{}{KeyToken: "token"})

		_, _, err := executeCommand(NewAccountCommand(), "order-items")
		require.ErrorIs(t, err, constants.ErrNoTenantConfigured)
	})

	t.Run("missing token", func(t *testing.T) {
		setViper(t, map[string]interface{}{KeyTenantID: "tenant"})

		_, _, err := executeCommand(NewAccountCommand(), "order-items")
		require.ErrorIs(t, err, constants.ErrNoTokenConfigured)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		setViper(t, map[string]interface{}{KeyTenantID: "tenant", KeyTestMode: "1"})

		_, _, err := executeCommand(NewAccountCommand(), "invoice")
		require.Error(t, err)
	})
}

func TestAccountCommand_Verbose(t *testing.T) {
	setViper(t, map[string]interface{}{
		KeyTenantID: "tenant",
		KeyTestMode: "1",
		KeyOutput:   constants.FormatJSON,
		"verbose":   true,
	})

	_, stderr, err := executeCommand(NewAccountCommand(), "version")
	require.NoError(t, err)
	assert.Contains(t, stderr, "HTTP Request")
	assert.Contains(t, stderr, "HTTP Response")
	assert.NotContains(t, stderr, "secret")
}
