package conoha

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired          = errors.New("config is required")
	ErrAccountEndpointRequired = errors.New("account endpoint or region is required")
	ErrTenantIDRequired        = errors.New("tenant ID is required")
	ErrInvalidReadStatus       = errors.New("invalid notification read status")
	ErrNoAPIError              = errors.New("no api error found in body")
)

// TestModeEnv is the environment variable that switches every request to the fixture transport.
const TestModeEnv = "IS_TEST"

// Notification read statuses accepted by UpdateNotificationStatus.
const (
	ReadStatusUnread        = "Unread"
	ReadStatusReadTitleOnly = "ReadTitleOnly"
	ReadStatusRead          = "Read"
)

// Document is a decoded JSON object returned by the API.
type Document = map[string]interface{}

// Client gives access to the ConoHa service clients.
type Client interface {
	Account() AccountClient
	TenantID() string
}

// AccountClient covers the account service: orders, billing, notifications and
// object storage usage.
type AccountClient interface {
	GetVersionDetail(ctx context.Context) (Document, error)
	ListOrderItems(ctx context.Context) (Document, error)
	GetOrderItem(ctx context.Context, itemID string) (Document, error)
	ListProductItems(ctx context.Context, serviceName string) (Document, error)
	GetPaymentHistory(ctx context.Context) (Document, error)
	GetPaymentSummary(ctx context.Context) (Document, error)
	ListBillingInvoices(ctx context.Context, opts *ListOptions) (Document, error)
	GetBillingInvoice(ctx context.Context, invoiceID string) (Document, error)
	ListNotifications(ctx context.Context, opts *ListOptions) (Document, error)
	GetNotification(ctx context.Context, notificationCode string) (Document, error)
	UpdateNotificationStatus(ctx context.Context, notificationCode, status string) (Document, error)
	GetObjectStorageRequests(ctx context.Context, opts *RRDOptions) (Document, error)
	GetObjectStorageSize(ctx context.Context, opts *RRDOptions) (Document, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a conoha.Client.
//
// The token and tenant ID are obtained elsewhere (for example from the identity
// service) and are passed through without validation.
type Config struct {
	// AccountEndpoint: base URL of the account service, e.g. "https://account.tyo1.conoha.io".
	// conohaclient.New trims a trailing slash and adds "https://" when no scheme is present.
	AccountEndpoint string
	// Region: used to derive AccountEndpoint when it is empty.
	Region string
	// TenantID: the tenant the account paths are scoped to.
	TenantID string
	// Token: sent as X-Auth-Token on every request.
	Token string

	// TestMode: every request is answered by the fixed fixture response and no network
	// I/O happens. See TestModeFromEnv.
	TestMode bool

	// HTTPTimeout: optional overall timeout for one request. Zero leaves it to the context.
	HTTPTimeout time.Duration
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the User-Agent header.
	UserAgent string
	// MetricsRegisterer: when set, request metrics are registered with it.
	MetricsRegisterer prometheus.Registerer
}

// TestModeFromEnv reports whether IS_TEST holds a truthy value. Empty, "0" and "false"
// are falsy; anything else is truthy.
func TestModeFromEnv() bool {
	return IsTruthy(os.Getenv(TestModeEnv))
}

// IsTruthy applies the IS_TEST truthiness rules to value.
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
