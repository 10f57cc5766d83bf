package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the timeout the CLI applies to a single request.
	DefaultHTTPTimeout = 30 * time.Second
)

// Header names written by the request builder.
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderAuthToken   = "X-Auth-Token"
	HeaderUserAgent   = "User-Agent"
)

// Media types.
const (
	// MediaTypeJSON is used for Accept and for JSON request bodies.
	MediaTypeJSON = "application/json"
)

// Default request values.
const (
	// DefaultMethod is the method of a request that never called WithMethod.
	DefaultMethod = "GET"

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "conoha-go"
)

// Fixture served by the test-mode transport.
const (
	// FixtureStatusCode is the status of every fixture response.
	FixtureStatusCode = 200

	// FixtureTokenID is the opaque token embedded in the fixture body.
	FixtureTokenID = "sample00d88246078f2bexample788f7"

	// FixtureBody is the body of every fixture response.
	FixtureBody = `{"checkKey": "checkValue", "access": {"token": {"id": "` + FixtureTokenID + `"}}}`
)

// Endpoints.
const (
	// AccountEndpointFormat builds the account endpoint from a region name.
	AccountEndpointFormat = "https://account.%s.conoha.io"

	// DefaultRegion is used by the CLI when no region is configured.
	DefaultRegion = "tyo1"

	// AccountAPIVersion prefixes every account path.
	AccountAPIVersion = "/v1"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Argument counts.
const (
	// MinimumArgumentCount is the argument count of "config set KEY VALUE" and similar.
	MinimumArgumentCount = 2
)
