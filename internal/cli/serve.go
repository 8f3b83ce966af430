// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ts2openapi/ts2openapi/internal/config"
	"github.com/ts2openapi/ts2openapi/internal/generator"
	"github.com/ts2openapi/ts2openapi/internal/server"
	"github.com/ts2openapi/ts2openapi/internal/watcher"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve [paths...]",
	Short: "Serve a live preview of the document",
	Long: `Serve the generated document over HTTP and regenerate it on change.

Endpoints:
  /openapi.json  The document as JSON
  /openapi.yaml  The document as YAML
  /docs          Redoc preview

Example:
  ts2openapi serve                      # Listen on the configured address
  ts2openapi serve --addr :3000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "addr", "", "listen address (default from config, "+config.DefaultAddress+")")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := serveAddress
	if addr == "" {
		addr = cfg.Serve.Address
	}
	if addr == "" {
		addr = config.DefaultAddress
	}

	logger := newLogger()
	srv := server.New(logger)

	w := watcher.New(cfg, logger)
	w.OnResult = func(result *generator.Result) {
		if err := srv.Update(result.Document); err != nil {
			logger.Error("failed to update preview", "error", err)
		}
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	printInfo("Serving preview at http://localhost%s%s", addr, server.DocsPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Watch(gctx)
	})
	g.Go(func() error {
		return srv.Listen(gctx, addr)
	})
	return g.Wait()
}
