// Package cmd provides the command-line interface for schemaforge.
//
// Configuration sources, highest priority first:
//
//	1. Command-line flags (--config, --log-level)
//	2. SCHEMAFORGE_-prefixed environment variables
//	3. .schemaforge.yml in the current directory
//
// Every command works against the repository the tool is run from: the
// schema tree, the five ecosystem workspace manifests, and the per-ecosystem
// client trees.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schemaforge/schemaforge/internal/config"
	"github.com/schemaforge/schemaforge/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schemaforge",
	Short: "Workspace synchronization for a multi-language schema monorepo",
	Long: `Schemaforge keeps a schema monorepo and its five client ecosystems
consistent. It discovers schema modules, synchronizes every ecosystem's
workspace manifest, validates client directory trees, and scaffolds new
modules from templates.

Quick Start:
  schemaforge discover            List the current schema modules
  schemaforge sync                Reconcile all workspace manifests
  schemaforge sync --check        Fail if any manifest has drifted (CI)
  schemaforge validate            Check client trees against the module set
  schemaforge scaffold billing "Billing service"
  schemaforge watch               Resync automatically on schema changes`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .schemaforge.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("SCHEMAFORGE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".schemaforge")
	}

	viper.SetEnvPrefix("SCHEMAFORGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads and validates configuration and builds the root logger.
func loadConfig() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := logging.New(&logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, logger, nil
}
