// Package cmd provides the command-line interface for dtags.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --log-level, etc.) - highest priority
//	2. DTAGS_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (DTAGS_SCAN_PATHS, etc.)
//	4. Configuration files (.dtags.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dtags",
	Short: "Manage delimited tags in documentation trees",
	Long: `dtags locates named, delimited regions ("tags") inside reStructuredText
documents, tracks every occurrence of each tag across the tree, reports
occurrences whose content has diverged, and can propagate one occurrence's
content to all the others.

A tag opens on a line reading ".. tag NAME" and closes on a ".. end_tag" line
at the same column. Tags may nest.

Quick Start:
  dtags check                 Report tags with divergent occurrences
  dtags list                  List all tags
  dtags whereis NAME          Show every occurrence of matching tags
  dtags replicate FILE[:N]    Propagate the bodies defined there tree-wide
  dtags watch                 Re-run the consistency check on file changes`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .dtags.yml, can also use DTAGS_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. DTAGS_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .dtags.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("DTAGS_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dtags")
	}

	viper.SetEnvPrefix("DTAGS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files fall back to defaults without failing.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
