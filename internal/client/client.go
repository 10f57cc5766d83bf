package client

import (
	"context"
	"fmt"

	"github.com/keika299/conoha/internal/http"
	"github.com/keika299/conoha/pkg/conoha"
)

// Client implements the conoha.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tenantID   string
	token      string
	logger     conoha.Logger

	// Service clients
	account *AccountClient
}

// New creates a new ConoHa API client. The config is expected to be normalized already:
// AccountEndpoint set, no trailing slash.
func New(_ context.Context, config *conoha.Config) (*Client, error) {
	if config == nil {
		return nil, conoha.ErrConfigRequired
	}

	if config.AccountEndpoint == "" {
		return nil, conoha.ErrAccountEndpointRequired
	}

	if config.TenantID == "" {
		return nil, conoha.ErrTenantIDRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: http.NewClient(httpOpts...),
		baseURL:    config.AccountEndpoint,
		tenantID:   config.TenantID,
		token:      config.Token,
		logger:     config.Logger,
	}

	client.initializeServiceClients()

	return client, nil
}

// NewWithHTTPClient creates a client around an existing HTTP client.
func NewWithHTTPClient(config *conoha.Config, httpClient *http.Client) (*Client, error) {
	if config == nil {
		return nil, conoha.ErrConfigRequired
	}

	if config.AccountEndpoint == "" {
		return nil, conoha.ErrAccountEndpointRequired
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.AccountEndpoint,
		tenantID:   config.TenantID,
		token:      config.Token,
		logger:     config.Logger,
	}

	client.initializeServiceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *conoha.Config) ([]http.Option, error) {
	httpOpts := []http.Option{
		http.WithTestMode(config.TestMode),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.MetricsRegisterer != nil {
		metrics, err := http.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}

		httpOpts = append(httpOpts, http.WithMetrics(metrics))
	}

	return httpOpts, nil
}

func (c *Client) initializeServiceClients() {
	c.account = NewAccountClient(c.httpClient, c.baseURL, c.tenantID, c.token)
}

// Account implements conoha.Client.Account.
func (c *Client) Account() conoha.AccountClient {
	return c.account
}

// TenantID implements conoha.Client.TenantID.
func (c *Client) TenantID() string {
	return c.tenantID
}

// BaseURL returns the account endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// loggerAdapter adapts conoha.Logger to http.Logger.
type loggerAdapter struct {
	logger conoha.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

// Ensure Client implements conoha.Client.
var _ conoha.Client = (*Client)(nil)
