// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for ts2openapi.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ts2openapi/ts2openapi/internal/config"
)

// Global flags
var (
	cfgFile string
	output  string
	format  string
	verbose bool
	quiet   bool
)

// Output streams, rebound to the running command's streams before each run.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ts2openapi",
	Short: "Comment-driven OpenAPI generator for Express TypeScript sources",
	Long: `ts2openapi builds an OpenAPI 3.0 document from TypeScript sources.

Interfaces whose first member is preceded by a "// swagger" comment become
component schemas. Express handlers (app.get, app.post, app.put,
app.delete) whose body starts with "// schema: Name" comments become
operations.

Example:
  ts2openapi init                      # Create ts2openapi.json
  ts2openapi generate                  # Generate the document
  ts2openapi check --ci                # Fail when the document is stale
  ts2openapi serve                     # Preview with live reload`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		stdout = cmd.OutOrStdout()
		stderr = cmd.ErrOrStderr()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ts2openapi.json)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: json, yaml (default: json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(printCmd)
}

// newLogger returns the diagnostics logger. It writes to stderr so stdout
// stays clean for document output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the config file and applies command-line overrides.
// Positional paths replace the configured path list.
func loadConfig(paths []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if len(paths) > 0 {
		cfg.SetPathList(paths)
	}

	printVerbose("Configuration:")
	printVerbose("  API: %s %s", cfg.APIName, cfg.Version)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Paths: %v", cfg.PathList)

	return cfg, nil
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}
