package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keika299/conoha/cmd/conoha/commands"
	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "conoha",
	Short: "ConoHa API CLI",
	Long: `A command-line interface for the ConoHa account API.

It reads order items, products, payments, invoices, notifications and
object storage usage of a tenant.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.conoha/config.yml)")
	rootCmd.PersistentFlags().StringP("region", "r", "", "region used to derive the account endpoint (default tyo1)")
	rootCmd.PersistentFlags().String("endpoint", "", "account API endpoint URL, overrides --region")
	rootCmd.PersistentFlags().String("tenant", "", "tenant ID")
	rootCmd.PersistentFlags().StringP("token", "t", "", "authentication token")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "request timeout")
	rootCmd.PersistentFlags().Bool("test-mode", false, "answer every request with a fixed response, no network")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(commands.KeyRegion, rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag(commands.KeyAccountEndpoint, rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag(commands.KeyTenantID, rootCmd.PersistentFlags().Lookup("tenant"))
	_ = viper.BindPFlag(commands.KeyToken, rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag(commands.KeyOutput, rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag(commands.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag(commands.KeyTestMode, rootCmd.PersistentFlags().Lookup("test-mode"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewAccountCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".conoha")

		// Search config in ~/.conoha/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("CONOHA")
	viper.AutomaticEnv()
	_ = viper.BindEnv(commands.KeyTestMode, "CONOHA_TEST_MODE", conoha.TestModeEnv)

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
