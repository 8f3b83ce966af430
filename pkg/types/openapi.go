// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OpenAPIVersion is the OpenAPI specification version written to every document.
const OpenAPIVersion = "3.0.0"

// Paths maps a route path to its path item, in discovery order.
type Paths = orderedmap.OrderedMap[string, *PathItem]

// Responses maps a status code to its response, in insertion order.
type Responses = orderedmap.OrderedMap[string, *Response]

// SchemaMap maps names to schemas, in insertion order.
type SchemaMap = orderedmap.OrderedMap[string, *Schema]

// NewPaths returns an empty ordered path map.
func NewPaths() *Paths {
	return orderedmap.New[string, *PathItem]()
}

// NewResponses returns an empty ordered response map.
func NewResponses() *Responses {
	return orderedmap.New[string, *Response]()
}

// NewSchemaMap returns an empty ordered schema map.
func NewSchemaMap() *SchemaMap {
	return orderedmap.New[string, *Schema]()
}

// OpenAPI represents a complete OpenAPI 3.0 document.
type OpenAPI struct {
	// OpenAPI is the OpenAPI specification version
	OpenAPI string `json:"openapi" yaml:"openapi"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Paths holds the available paths and operations
	Paths *Paths `json:"paths" yaml:"paths"`

	// Servers is a list of server objects
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`

	// Components holds reusable objects
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API
	Title string `json:"title" yaml:"title"`

	// Version is the version of the API
	Version string `json:"version" yaml:"version"`

	// Description is a description of the API
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// XComment carries the generator attribution
	XComment string `json:"x-comment,omitempty" yaml:"x-comment,omitempty"`
}

// Server represents an API server.
type Server struct {
	// URL is the URL of the server
	URL string `json:"url" yaml:"url"`

	// Description is a description of the server
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem holds the operations registered on one path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// Operation returns the operation slot for a lower-case HTTP method.
// It returns nil for methods a PathItem does not carry.
func (p *PathItem) Operation(method string) **Operation {
	switch method {
	case MethodGet:
		return &p.Get
	case MethodPut:
		return &p.Put
	case MethodPost:
		return &p.Post
	case MethodDelete:
		return &p.Delete
	}
	return nil
}

// Methods returns the lower-case methods set on the path item, in a fixed order.
func (p *PathItem) Methods() []string {
	var methods []string
	for _, m := range HTTPMethods {
		if slot := p.Operation(m); slot != nil && *slot != nil {
			methods = append(methods, m)
		}
	}
	return methods
}

// Operation represents an API operation.
type Operation struct {
	// Tags is a list of tags
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Description is a detailed description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// OperationID is a unique identifier
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	// Parameters is a list of parameters
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// RequestBody is the request body
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`

	// Responses maps status codes to responses
	Responses *Responses `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Parameter represents an OpenAPI parameter.
type Parameter struct {
	// Name is the parameter name
	Name string `json:"name" yaml:"name"`

	// In is the location of the parameter (path, query)
	In string `json:"in" yaml:"in"`

	// Schema defines the type of the parameter
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Required indicates if the parameter is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Description is a brief description of the parameter
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RequestBody represents an OpenAPI request body.
type RequestBody struct {
	// Required indicates if the request body is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Content maps media types to their schemas
	Content map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response represents an OpenAPI response.
type Response struct {
	// Description is a brief description of the response
	Description string `json:"description" yaml:"description"`

	// Content maps media types to their schemas
	Content map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType represents an OpenAPI media type.
type MediaType struct {
	// Schema defines the structure of the content
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Components holds reusable objects.
type Components struct {
	// Schemas is an ordered map of schema objects
	Schemas *SchemaMap `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}
