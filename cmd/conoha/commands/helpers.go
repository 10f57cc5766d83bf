package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
	"github.com/keika299/conoha/pkg/conohaclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Masked       = "***"

	// JSON formatting.
	defaultJSONIndent = 2

	// userAgent is sent with every CLI request.
	userAgent = "conoha-cli"
)

// Configuration keys shared by flags, environment and the config file.
const (
	KeyRegion          = "region"
	KeyAccountEndpoint = "account_endpoint"
	KeyTenantID        = "tenant_id"
	KeyToken           = "token"
	KeyOutput          = "output"
	KeyTimeout         = "timeout"
	KeyTestMode        = "test_mode"
)

// newClientFunc builds the API client for a command. Tests replace it.
var newClientFunc = newClient

// newClient creates a ConoHa client from the effective configuration.
func newClient(cmd *cobra.Command) (conoha.Client, error) {
	testMode := conoha.IsTruthy(viper.GetString(KeyTestMode))

	tenantID := viper.GetString(KeyTenantID)
	if tenantID == "" {
		return nil, constants.ErrNoTenantConfigured
	}

	token := viper.GetString(KeyToken)
	if token == "" && !testMode {
		return nil, constants.ErrNoTokenConfigured
	}

	region := viper.GetString(KeyRegion)
	if region == "" {
		region = constants.DefaultRegion
	}

	config := &conoha.Config{
		AccountEndpoint: viper.GetString(KeyAccountEndpoint),
		Region:          region,
		TenantID:        tenantID,
		Token:           token,
		TestMode:        testMode,
		HTTPTimeout:     viper.GetDuration(KeyTimeout),
		UserAgent:       userAgent,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = newSlogLogger(cmd.ErrOrStderr())
	}

	client, err := conohaclient.New(commandContext(cmd), config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// commandContext returns the command context, or a background context outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// validateOutputFormat checks the --output value.
func validateOutputFormat(format string) error {
	switch format {
	case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// renderValue writes value in the configured output format. title heads the table output.
func renderValue(out io.Writer, title string, value interface{}) error {
	format := viper.GetString(KeyOutput)

	err := validateOutputFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(defaultJSONIndent)

		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		return renderTable(out, title, flatten(value))
	}
}

// row is one line of the table output.
type row struct {
	key   string
	value string
}

func renderTable(out io.Writer, title string, rows []row) error {
	if title != "" {
		_, _ = fmt.Fprintf(out, "%s:\n", displayTitle(title))
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, r := range rows {
		_ = table.Append([]string{r.key, r.value})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// displayTitle turns a command or key name such as "billing-invoices" into "Billing Invoices".
func displayTitle(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)

	return cases.Title(language.English).String(words)
}

// flatten turns a decoded JSON document into sorted key/value rows. Nested keys are joined
// with "." and array elements use their index.
func flatten(value interface{}) []row {
	var rows []row

	flattenInto(&rows, "", value)

	return rows
}

func flattenInto(rows *[]row, prefix string, value interface{}) {
	switch typed := value.(type) {
	case map[string]interface{}:
		if len(typed) == 0 {
			*rows = append(*rows, row{key: prefix, value: "{}"})

			return
		}

		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			flattenInto(rows, joinKey(prefix, key), typed[key])
		}
	case []interface{}:
		if len(typed) == 0 {
			*rows = append(*rows, row{key: prefix, value: "[]"})

			return
		}

		for i, item := range typed {
			flattenInto(rows, joinKey(prefix, strconv.Itoa(i)), item)
		}
	default:
		*rows = append(*rows, row{key: prefix, value: formatScalar(typed)})
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

func formatScalar(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return NotAvailable
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// slogLogger adapts a *slog.Logger to conoha.Logger.
type slogLogger struct {
	logger *slog.Logger
}

func newSlogLogger(out io.Writer) *slogLogger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})

	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, attrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, attrs(fields)...)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, attrs(fields)...)
}

// attrs converts fields to slog arguments in key order.
func attrs(fields map[string]interface{}) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, slog.Any(key, fields[key]))
	}

	return args
}
