package constants

import "errors"

// Configuration errors.
var (
	ErrNoTenantConfigured = errors.New("no tenant ID configured, use 'conoha config set tenant_id <id>'")
	ErrNoTokenConfigured  = errors.New("no token configured, use 'conoha config set token' or --token")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEmptyToken         = errors.New("token must not be empty")
	ErrValueRequired      = errors.New("a value is required for this key")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidRRDMode      = errors.New("invalid mode, expected average, max or min")
	ErrInvalidReadStatus   = errors.New("invalid read status, expected Unread, ReadTitleOnly or Read")
)
