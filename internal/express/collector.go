// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package express collects annotated Express-style route registrations
// (app.get('/path', handler) and friends) from a parsed source unit.
package express

import (
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ts2openapi/ts2openapi/internal/parser"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Collector finds route registrations and mines their handler comments.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a route collector. A nil logger uses slog.Default().
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Collect returns the kept route descriptors in document order.
// A route is kept when its path literal resolved and a schema marker was found.
func (c *Collector) Collect(pf *parser.ParsedFile) []types.RouteDescriptor {
	var routes []types.RouteDescriptor

	parser.Walk(pf.RootNode, func(n *sitter.Node) bool {
		if n.Type() != "expression_statement" {
			return true
		}

		route, ok := c.routeFromStatement(pf, n)
		if !ok {
			return true
		}

		if route.SchemaName == "" {
			c.logger.Debug("skipping route without schema",
				"method", route.Method,
				"path", route.Path,
				"file", route.SourceFile,
				"line", route.SourceLine)
			return true
		}

		routes = append(routes, route)
		return true
	})

	return routes
}

// routeFromStatement recognises `<obj>.<method>('<path>', ..., handler)`.
func (c *Collector) routeFromStatement(pf *parser.ParsedFile, stmt *sitter.Node) (types.RouteDescriptor, bool) {
	call := stmt.NamedChild(0)
	if call == nil || call.Type() != "call_expression" {
		return types.RouteDescriptor{}, false
	}

	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return types.RouteDescriptor{}, false
	}

	_, property := parser.GetMemberExpressionParts(callee, pf.Content)
	method := strings.ToLower(property)
	if !types.IsHTTPMethod(method) {
		return types.RouteDescriptor{}, false
	}

	args := parser.GetCallArguments(call)
	if len(args) == 0 {
		return types.RouteDescriptor{}, false
	}

	path, ok := parser.ExtractStringLiteral(args[0], pf.Content)
	if !ok {
		return types.RouteDescriptor{}, false
	}

	route := types.RouteDescriptor{
		Method: method,
		Path:   path,
	}
	route.SourceFile, route.SourceLine = pf.Locate(stmt)

	body := handlerBody(args[1:])
	if body == nil {
		return route, true
	}

	for _, comment := range parser.LeadingComments(body) {
		for _, line := range parser.CommentLines(comment.Content(pf.Content)) {
			ParseAnnotation(line, &route)
		}
	}

	return route, true
}

// handlerBody returns the statement block of the last function argument.
func handlerBody(args []*sitter.Node) *sitter.Node {
	for i := len(args) - 1; i >= 0; i-- {
		switch args[i].Type() {
		case "arrow_function", "function_expression", "function":
			body := args[i].ChildByFieldName("body")
			if body != nil && body.Type() == "statement_block" {
				return body
			}
		}
	}
	return nil
}
