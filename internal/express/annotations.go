// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package express

import (
	"regexp"
	"strings"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Annotation keys recognised in handler comments.
const (
	KeySchema              = "schema"
	KeyDescription         = "description"
	KeyResponseDescription = "response_description"
	KeyErrorSchema         = "error_schema"
	KeyStatusCode          = "status_code"
	KeyQueryParameter      = "query_parameter"
	KeyPathParameter       = "path_parameter"
)

// statusRegex matches "{404}: Not found".
var statusRegex = regexp.MustCompile(`^\{([^}]*)\}\s*:?\s*(.*)$`)

// paramRegex matches "{limit}[number]: Page size". The type is optional.
var paramRegex = regexp.MustCompile(`^\{([^}]*)\}\s*(?:\[([^\]]*)\])?\s*:?\s*(.*)$`)

// ParseAnnotation folds one comment line into the route descriptor.
// It reports whether the line carried a recognised marker. Keys are matched
// case-insensitively with whitespace removed; empty values are ignored.
func ParseAnnotation(line string, route *types.RouteDescriptor) bool {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}

	switch strings.ToLower(stripSpace(key)) {
	case KeySchema:
		if v := stripSpace(value); v != "" {
			route.SchemaName = v
		}
	case KeyErrorSchema:
		if v := stripSpace(value); v != "" {
			route.ErrorSchemaName = v
		}
	case KeyDescription:
		if v := strings.TrimSpace(value); v != "" {
			route.Description = v
		}
	case KeyResponseDescription:
		if v := strings.TrimSpace(value); v != "" {
			route.ResponseDescription = v
		}
	case KeyStatusCode:
		m := statusRegex.FindStringSubmatch(strings.TrimSpace(value))
		if m == nil {
			return false
		}
		code := stripSpace(m[1])
		if code == "" {
			return false
		}
		route.SetStatus(code, strings.TrimSpace(m[2]))
	case KeyQueryParameter:
		return parseParameter(value, types.InQuery, route)
	case KeyPathParameter:
		return parseParameter(value, types.InPath, route)
	default:
		return false
	}

	return true
}

// parseParameter appends a declared parameter. A missing type is "string".
func parseParameter(value, in string, route *types.RouteDescriptor) bool {
	m := paramRegex.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return false
	}

	name := stripSpace(m[1])
	if name == "" {
		return false
	}

	typ := stripSpace(m[2])
	if typ == "" {
		typ = types.TypeString
	}

	route.Parameters = append(route.Parameters, types.ParameterDescriptor{
		Name:        name,
		Type:        typ,
		Description: strings.TrimSpace(m[3]),
		In:          in,
	})
	return true
}

// stripSpace removes every whitespace character from s.
func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
