// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ts2openapi/ts2openapi/internal/generator"
	"github.com/ts2openapi/ts2openapi/internal/watcher"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch sources and regenerate the document on change",
	Long: `Watch the configured sources and regenerate the OpenAPI document whenever
a TypeScript or JavaScript file changes.

Changes are debounced: a burst of saves triggers one regeneration after
the quiet period. Generation errors are reported and watching continues.

Example:
  ts2openapi watch                          # Watch configured pathList
  ts2openapi watch src/                     # Watch specific paths
  ts2openapi watch --debounce 1000          # Wait 1s before regenerating
  ts2openapi watch --on-change "npm run lint:api"`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default from config)")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "shell command to run after each regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger()
	w := watcher.New(cfg, logger)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	w.OnResult = func(result *generator.Result) {
		if result.Written {
			printInfo("Regenerated %s (%d routes, %d schemas)", cfg.Output, len(result.Routes), len(result.Schemas))
		}
		if watchOnChange != "" {
			if err := runOnChange(ctx, watchOnChange); err != nil {
				logger.Warn("on-change command failed", "command", watchOnChange, "error", err)
			}
		}
	}

	printVerbose("  Debounce: %s", w.Debounce())
	printInfo("Watching for changes in: %s", strings.Join(cfg.PathList, ", "))
	printInfo("Press Ctrl+C to stop")

	return w.Watch(ctx)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runOnChange(ctx context.Context, command string) error {
	c := exec.CommandContext(ctx, "sh", "-c", command)
	c.Stdout = stdout
	c.Stderr = stderr
	return c.Run()
}
