// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generator runs the extraction pipeline: validate the
// configuration, load and parse the sources, collect schemas and routes,
// assemble the document and serialize it.
package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ts2openapi/ts2openapi/internal/config"
	"github.com/ts2openapi/ts2openapi/internal/express"
	"github.com/ts2openapi/ts2openapi/internal/openapi"
	"github.com/ts2openapi/ts2openapi/internal/parser"
	"github.com/ts2openapi/ts2openapi/internal/scanner"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Result is the outcome of one pipeline run.
type Result struct {
	// Document is the assembled OpenAPI document
	Document *types.OpenAPI

	// Output is the serialized document
	Output string

	// Files are the scanned source files in concatenation order
	Files []string

	// Schemas are the collected schema descriptors in document order
	Schemas []types.SchemaDescriptor

	// Routes are the kept route descriptors in document order
	Routes []types.RouteDescriptor

	// Written is set when Output was persisted to the configured file
	Written bool
}

// Generator runs the pipeline for one configuration.
type Generator struct {
	config *config.Config
	logger *slog.Logger
	writer *openapi.Writer
}

// New creates a generator. A nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		config: cfg,
		logger: logger,
		writer: openapi.NewWriter(),
	}
}

// Run generates the document and, when an output file is configured,
// writes it there. A write failure is logged and does not fail the run.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	return New(cfg, logger).Run(ctx)
}

// Run generates the document and persists it to the configured output file.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}

	if g.config.Output == "" {
		return result, nil
	}

	if err := g.writer.WriteFile(result.Document, g.config.Output, g.config.Format); err != nil {
		g.logger.Error("failed to write document",
			"path", g.config.Output,
			"error", err)
		return result, nil
	}

	result.Written = true
	g.logger.Info("wrote document", "path", g.config.Output)
	return result, nil
}

// Generate runs every stage except the file write.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	sc := scanner.New(scanner.Config{ExcludePatterns: g.config.Exclude})
	files, err := sc.Resolve(g.config.PathList)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source paths: %w", err)
	}
	g.logger.Debug("resolved source files", "count", len(files))

	src, err := sc.Load(files)
	if err != nil {
		return nil, err
	}

	tsParser := parser.NewTypeScriptParser()
	defer tsParser.Close()

	pf, err := tsParser.ParseSource(ctx, src)
	if err != nil {
		return nil, err
	}
	defer pf.Close()

	var schemas []types.SchemaDescriptor
	for _, node := range pf.CollectMarkedInterfaces() {
		schemas = append(schemas, pf.ExtractSchemaDescriptor(node))
	}

	routes := express.NewCollector(g.logger).Collect(pf)

	g.logger.Debug("collected descriptors",
		"schemas", len(schemas),
		"routes", len(routes))

	doc, err := openapi.NewBuilder(g.config, g.logger).Build(routes, schemas)
	if err != nil {
		return nil, err
	}

	out, err := g.writer.Marshal(doc, g.config.Format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document: doc,
		Output:   out,
		Files:    files,
		Schemas:  schemas,
		Routes:   routes,
	}, nil
}
