// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"firestige.xyz/bitpacket/internal/config"
	"firestige.xyz/bitpacket/internal/log"
)

var (
	// Global flags
	configFile string
	logLevel   string

	appConfig *config.Config
	runLogger log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bitpacket",
	Short: "bitpacket - BITS transmission decoder and evaluator",
	Long: `bitpacket decodes hexadecimal BITS transmissions into packet trees and
evaluates them.

A transmission is one line of uppercase hex. Each packet carries a 3-bit
version and a 3-bit type id; type 4 is a literal number, every other type
is an operator over sub-packets:

  0 sum   1 product   2 minimum   3 maximum
  5 greater than   6 less than   7 equal to

Input is read from a positional argument, a file (-f) or stdin.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/bitpacket/config.yml",
		"config file path (built-in defaults when absent)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"override log level (trace, debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(validateCmd)
}

// setup loads configuration and installs the global logger.
func setup() error {
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.ValidateAndApplyDefaults(); err != nil {
			return err
		}
	}
	if err := log.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	appConfig = cfg
	runLogger = log.GetLogger().WithField("run_id", uuid.NewString())
	runLogger.WithField("config", configFile).Debug("configuration loaded")
	return nil
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
