// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// MediaTypeJSON is the only media type written for bodies.
const MediaTypeJSON = "application/json"

// colonParamRegex matches path parameters in the format :param or :param(regex).
var colonParamRegex = regexp.MustCompile(`:([a-zA-Z_][a-zA-Z0-9_]*)(?:\([^)]*\))?`)

// braceParamRegex matches OpenAPI path parameters ({param}).
var braceParamRegex = regexp.MustCompile(`^\{([^}]+)\}$`)

// nonAlnumRegex matches characters dropped from operation IDs.
var nonAlnumRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ConvertPath rewrites Express-style parameters (:id, :id(\d+)) to OpenAPI
// form ({id}) and returns the parameter names in order of appearance.
func ConvertPath(path string) (string, []string) {
	var names []string
	seen := make(map[string]bool)
	for _, m := range colonParamRegex.FindAllStringSubmatch(path, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return colonParamRegex.ReplaceAllString(path, "{$1}"), names
}

// BuildOperation converts a route descriptor into its OpenAPI path and operation.
func BuildOperation(route types.RouteDescriptor) (string, *types.Operation) {
	path, pathParams := ConvertPath(route.Path)

	op := &types.Operation{
		Tags:        []string{route.SchemaName},
		Description: route.Description,
		OperationID: GenerateOperationID(route.Method, path),
		Parameters:  buildParameters(route, pathParams),
		Responses:   buildResponses(route, len(pathParams) > 0),
	}

	if route.Method == types.MethodPost || route.Method == types.MethodPut {
		op.RequestBody = &types.RequestBody{
			Required: true,
			Content: map[string]types.MediaType{
				MediaTypeJSON: {Schema: types.RefTo(route.SchemaName)},
			},
		}
	}

	return path, op
}

// buildParameters synthesizes one required string parameter per path
// segment, then folds in the declared parameters. A declared parameter
// sharing a synthesized one's name and location overlays it.
func buildParameters(route types.RouteDescriptor, pathParams []string) []types.Parameter {
	var params []types.Parameter

	for _, name := range pathParams {
		params = append(params, types.Parameter{
			Name:        name,
			In:          types.InPath,
			Schema:      &types.Schema{Type: types.TypeString},
			Required:    true,
			Description: "The " + route.SchemaName + " id",
		})
	}

	var declared []types.Parameter
	for _, p := range route.Parameters {
		param := types.Parameter{
			Name:        p.Name,
			In:          p.In,
			Schema:      &types.Schema{Type: parameterType(p.Type)},
			Description: p.Description,
		}
		if p.In == types.InPath {
			param.Required = true
		}
		declared = append(declared, param)
	}

	return MergeParameters(params, declared)
}

// parameterType is number iff the declared type is exactly "number".
func parameterType(declared string) string {
	if declared == types.TypeNumber {
		return types.TypeNumber
	}
	return types.TypeString
}

// buildResponses builds the 200 response followed by the status overrides.
// A list is returned only for get on a path without parameters.
func buildResponses(route types.RouteDescriptor, hasPathParams bool) *types.Responses {
	responses := types.NewResponses()

	body := types.RefTo(route.SchemaName)
	if route.Method == types.MethodGet && !hasPathParams {
		body = &types.Schema{
			Items: types.RefTo(route.SchemaName),
			Type:  types.TypeArray,
		}
	}

	responses.Set("200", &types.Response{
		Description: route.ResponseDescription,
		Content: map[string]types.MediaType{
			MediaTypeJSON: {Schema: body},
		},
	})

	for _, override := range route.StatusOverrides {
		if override.Code == "200" {
			continue
		}

		resp := &types.Response{Description: override.Description}
		if route.ErrorSchemaName != "" {
			resp.Content = map[string]types.MediaType{
				MediaTypeJSON: {Schema: types.RefTo(route.ErrorSchemaName)},
			}
		}
		responses.Set(override.Code, resp)
	}

	return responses
}

// GenerateOperationID generates an operation ID from method and path:
// get /api/users/{userId} becomes getApiUsersByUserId.
func GenerateOperationID(method, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(method))

	titleCaser := cases.Title(language.English, cases.NoLower)
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		prefix := ""
		if m := braceParamRegex.FindStringSubmatch(segment); m != nil {
			prefix = "By"
			segment = m[1]
		}

		for _, word := range nonAlnumRegex.Split(segment, -1) {
			if word == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(titleCaser.String(word))
			prefix = ""
		}
	}

	return sb.String()
}
