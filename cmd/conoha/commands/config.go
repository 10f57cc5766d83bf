package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	Region          string `json:"region,omitempty"           yaml:"region,omitempty"`
	AccountEndpoint string `json:"account_endpoint,omitempty" yaml:"account_endpoint,omitempty"`
	TenantID        string `json:"tenant_id,omitempty"        yaml:"tenant_id,omitempty"`
	Token           string `json:"token,omitempty"            yaml:"token,omitempty"`
	Output          string `json:"output,omitempty"           yaml:"output,omitempty"`
	TestMode        bool   `json:"test_mode,omitempty"        yaml:"test_mode,omitempty"`
}

// readSecretFunc reads a secret from the terminal without echo. Tests replace it.
var readSecretFunc = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage ConoHa CLI configuration stored in $HOME/.conoha/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment and the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = Masked
			}

			out := cmd.OutOrStdout()

			output := viper.GetString(KeyOutput)
			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(out)

				return encoder.Encode(config)
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Keys: region, account_endpoint, tenant_id, token, output, test_mode.
When VALUE is omitted for token, it is read from the terminal without echo.`,
		Args: cobra.RangeArgs(1, constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value string

			switch {
			case len(args) == constants.MinimumArgumentCount:
				value = args[1]
			case key == KeyToken:
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Token: ")

				secret, err := readSecretFunc()

				_, _ = fmt.Fprintln(cmd.ErrOrStderr())

				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}

				value = strings.TrimSpace(string(secret))
			default:
				return fmt.Errorf("%w: %s", constants.ErrValueRequired, key)
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			err = unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

// loadConfig returns the effective configuration.
func loadConfig() *Config {
	return &Config{
		Region:          viper.GetString(KeyRegion),
		AccountEndpoint: viper.GetString(KeyAccountEndpoint),
		TenantID:        viper.GetString(KeyTenantID),
		Token:           viper.GetString(KeyToken),
		Output:          viper.GetString(KeyOutput),
		TestMode:        conoha.IsTruthy(viper.GetString(KeyTestMode)),
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case KeyRegion:
		config.Region = value
	case KeyAccountEndpoint:
		config.AccountEndpoint = value
	case KeyTenantID:
		config.TenantID = value
	case KeyToken:
		if value == "" {
			return constants.ErrEmptyToken
		}

		config.Token = value
	case KeyOutput:
		err := validateOutputFormat(value)
		if err != nil {
			return err
		}

		config.Output = value
	case KeyTestMode:
		config.TestMode = conoha.IsTruthy(value)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case KeyRegion:
		config.Region = ""
	case KeyAccountEndpoint:
		config.AccountEndpoint = ""
	case KeyTenantID:
		config.TenantID = ""
	case KeyToken:
		config.Token = ""
	case KeyOutput:
		config.Output = ""
	case KeyTestMode:
		config.TestMode = false
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// configFilePath returns the config file in use, or $HOME/.conoha/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".conoha", "config.yml"), nil
}

// readConfigFile reads the config file at path. A missing file is an empty config.
func readConfigFile(path string) (*Config, error) {
	// path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func writeConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(out io.Writer, config *Config) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Region", valueOrNotAvailable(config.Region)})
	_ = table.Append([]string{"Account Endpoint", valueOrNotAvailable(config.AccountEndpoint)})
	_ = table.Append([]string{"Tenant ID", valueOrNotAvailable(config.TenantID)})
	_ = table.Append([]string{"Token", valueOrNotAvailable(config.Token)})
	_ = table.Append([]string{"Output", valueOrNotAvailable(config.Output)})
	_ = table.Append([]string{"Test Mode", strconv.FormatBool(config.TestMode)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func valueOrNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
