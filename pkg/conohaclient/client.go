// Package conohaclient provides the main entry point for creating ConoHa API clients
package conohaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/keika299/conoha/internal/client"
	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
)

// New creates a new ConoHa API client. The caller's config is not modified.
func New(ctx context.Context, config *conoha.Config) (conoha.Client, error) {
	if config == nil {
		return nil, conoha.ErrConfigRequired
	}

	normalized := *config

	endpoint, err := resolveAccountEndpoint(config)
	if err != nil {
		return nil, err
	}

	normalized.AccountEndpoint = endpoint

	if normalized.TenantID == "" {
		return nil, conoha.ErrTenantIDRequired
	}

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// AccountEndpoint returns the account service endpoint of region.
func AccountEndpoint(region string) string {
	return fmt.Sprintf(constants.AccountEndpointFormat, region)
}

// resolveAccountEndpoint picks AccountEndpoint when set, otherwise derives it from Region.
func resolveAccountEndpoint(config *conoha.Config) (string, error) {
	endpoint := config.AccountEndpoint
	if endpoint == "" {
		if config.Region == "" {
			return "", conoha.ErrAccountEndpointRequired
		}

		endpoint = AccountEndpoint(config.Region)
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint, nil
}

// NewWithToken creates a new client for region with a token you already have.
func NewWithToken(ctx context.Context, region, tenantID, token string) (conoha.Client, error) {
	return New(ctx, &conoha.Config{
		Region:   region,
		TenantID: tenantID,
		Token:    token,
	})
}

// NewWithEndpoint creates a new client against an explicit account endpoint.
func NewWithEndpoint(ctx context.Context, endpoint, tenantID, token string) (conoha.Client, error) {
	return New(ctx, &conoha.Config{
		AccountEndpoint: endpoint,
		TenantID:        tenantID,
		Token:           token,
	})
}

// NewFromEnv is New with TestMode taken from the IS_TEST environment variable.
func NewFromEnv(ctx context.Context, config *conoha.Config) (conoha.Client, error) {
	if config == nil {
		return nil, conoha.ErrConfigRequired
	}

	withEnv := *config
	withEnv.TestMode = withEnv.TestMode || conoha.TestModeFromEnv()

	return New(ctx, &withEnv)
}
