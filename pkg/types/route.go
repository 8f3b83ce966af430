// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the descriptors extracted from source and the
// OpenAPI document model they are assembled into.
package types

// Lower-case HTTP methods recognised on route registrations.
const (
	MethodGet    = "get"
	MethodPut    = "put"
	MethodPost   = "post"
	MethodDelete = "delete"
)

// HTTPMethods lists the recognised methods in output order.
var HTTPMethods = []string{MethodGet, MethodPut, MethodPost, MethodDelete}

// Parameter locations.
const (
	InQuery = "query"
	InPath  = "path"
)

// IsHTTPMethod reports whether m is one of the recognised lower-case methods.
func IsHTTPMethod(m string) bool {
	switch m {
	case MethodGet, MethodPut, MethodPost, MethodDelete:
		return true
	default:
		return false
	}
}

// RouteDescriptor is the metadata extracted for one route registration,
// before it is assembled into an OpenAPI operation.
type RouteDescriptor struct {
	// Method is the lower-case HTTP method (get, put, post, delete)
	Method string `json:"method" yaml:"method"`

	// Path is the route path as written in source (e.g., "/users/:id")
	Path string `json:"path" yaml:"path"`

	// SchemaName names the interface used for request and response bodies
	SchemaName string `json:"schemaName" yaml:"schemaName"`

	// Description is the operation description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ResponseDescription describes the 200 response
	ResponseDescription string `json:"responseDescription,omitempty" yaml:"responseDescription,omitempty"`

	// ErrorSchemaName names the interface used for every status override body
	ErrorSchemaName string `json:"errorSchemaName,omitempty" yaml:"errorSchemaName,omitempty"`

	// StatusOverrides are extra responses in declaration order
	StatusOverrides []StatusOverride `json:"statusOverrides,omitempty" yaml:"statusOverrides,omitempty"`

	// Parameters are declared query and path parameters in declaration order
	Parameters []ParameterDescriptor `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// SourceFile is the file the registration was found in
	SourceFile string `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`

	// SourceLine is the line number within SourceFile
	SourceLine int `json:"sourceLine,omitempty" yaml:"sourceLine,omitempty"`
}

// SetStatus records a status override. A code seen before keeps its
// position and takes the new description.
func (r *RouteDescriptor) SetStatus(code, description string) {
	for i := range r.StatusOverrides {
		if r.StatusOverrides[i].Code == code {
			r.StatusOverrides[i].Description = description
			return
		}
	}
	r.StatusOverrides = append(r.StatusOverrides, StatusOverride{Code: code, Description: description})
}

// StatusOverride is a declared non-default response.
type StatusOverride struct {
	// Code is the numeric status code as a string (e.g., "404")
	Code string `json:"code" yaml:"code"`

	// Description is the response description
	Description string `json:"description" yaml:"description"`
}

// ParameterDescriptor is a declared query or path parameter.
type ParameterDescriptor struct {
	// Name is the parameter name
	Name string `json:"name" yaml:"name"`

	// Type is the declared primitive type (e.g., "number", "string")
	Type string `json:"type" yaml:"type"`

	// Description is the parameter description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// In is the parameter location (query or path)
	In string `json:"in" yaml:"in"`
}
