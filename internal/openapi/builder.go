// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi provides OpenAPI document assembly and manipulation.
package openapi

import (
	"fmt"
	"log/slog"

	"github.com/ts2openapi/ts2openapi/internal/config"
	"github.com/ts2openapi/ts2openapi/internal/schema"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Attribution is written to info.x-comment of every generated document.
const Attribution = "Generated by ts2openapi (https://github.com/ts2openapi/ts2openapi)"

// Builder assembles OpenAPI documents from route and schema descriptors.
type Builder struct {
	config *config.Config
	logger *slog.Logger
}

// NewBuilder creates a new OpenAPI builder with the given configuration.
// A nil logger uses slog.Default().
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		config: cfg,
		logger: logger,
	}
}

// Build folds every schema and route, in discovery order, into one document.
// Each descriptor becomes a fragment that is deep-merged into the result.
func (b *Builder) Build(routes []types.RouteDescriptor, schemas []types.SchemaDescriptor) (*types.OpenAPI, error) {
	doc := b.baseDocument()

	translator := schema.NewTranslator()
	for _, desc := range schemas {
		fragment := &types.OpenAPI{
			Components: &types.Components{Schemas: types.NewSchemaMap()},
		}
		fragment.Components.Schemas.Set(desc.Name, translator.TranslateAndRegister(desc))
		MergeDocument(doc, fragment)
	}

	for _, route := range routes {
		fragment, err := b.routeFragment(route)
		if err != nil {
			return nil, fmt.Errorf("failed to build route %s %s: %w", route.Method, route.Path, err)
		}

		b.checkReferences(route, translator.Registry())
		MergeDocument(doc, fragment)
	}

	return doc, nil
}

// baseDocument builds the document skeleton from configuration.
func (b *Builder) baseDocument() *types.OpenAPI {
	doc := &types.OpenAPI{
		OpenAPI: types.OpenAPIVersion,
		Info: types.Info{
			Title:       b.config.APIName,
			Version:     b.config.Version,
			Description: b.config.Description,
			XComment:    Attribution,
		},
		Paths: types.NewPaths(),
	}

	for _, s := range b.config.Servers {
		doc.Servers = append(doc.Servers, types.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}

	return doc
}

// routeFragment builds a document holding only the route's operation.
func (b *Builder) routeFragment(route types.RouteDescriptor) (*types.OpenAPI, error) {
	item := &types.PathItem{}
	slot := item.Operation(route.Method)
	if slot == nil {
		return nil, fmt.Errorf("unsupported HTTP method: %s", route.Method)
	}

	path, op := BuildOperation(route)
	*slot = op

	fragment := &types.OpenAPI{Paths: types.NewPaths()}
	fragment.Paths.Set(path, item)
	return fragment, nil
}

// checkReferences warns about schema names no marked interface defines.
func (b *Builder) checkReferences(route types.RouteDescriptor, registry *schema.Registry) {
	for _, name := range []string{route.SchemaName, route.ErrorSchemaName} {
		if name != "" && !registry.Has(name) {
			b.logger.Warn("route references unknown schema",
				"schema", name,
				"method", route.Method,
				"path", route.Path,
				"file", route.SourceFile,
				"line", route.SourceLine)
		}
	}
}
