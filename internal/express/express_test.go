// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package express

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts2openapi/ts2openapi/internal/parser"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// routesTestCode covers the route shapes the collector recognises.
const routesTestCode = `
import express from 'express'

const app = express()

app.get('/api/users', (req, res) => {
  // schema: User
  // description: List users
  // response_description: All users
  // query_parameter: {limit}[number]: Page size
  // query_parameter: {q}[string]: Search text
  res.json([])
})

app.get('/api/users/:userId', function (req, res) {
  /**
   * schema: User
   * description: Get user by id
   * error_schema: ErrorShape
   * status_code: {404}: Not found
   * status_code: {500}: Server error
   */
  res.json({})
})

router.POST('/api/users', auth, async (req, res) => {
  // Schema : Us er
  // Description:   Create a user
})

app.delete('/api/users/:userId', (req, res) => {
  // description: no schema here
  res.sendStatus(204)
})

app.put(pathVariable, (req, res) => {
  // schema: User
})

app.patch('/api/users/:userId', (req, res) => {
  // schema: User
})

app.get('/api/ping', (req, res) => res.send('pong'))

app.put(` + "`/api/users/:userId`" + `, (req, res) => {
  // schema: User
  // path_parameter: {userId}[string]: The user identifier
  res.json({})
})
`

func collect(t *testing.T, code string) []types.RouteDescriptor {
	t.Helper()

	p := parser.NewTypeScriptParser()
	t.Cleanup(p.Close)

	pf, err := p.Parse(context.Background(), "routes.ts", []byte(code))
	require.NoError(t, err)
	t.Cleanup(pf.Close)

	return NewCollector(nil).Collect(pf)
}

func TestCollector_Collect(t *testing.T) {
	routes := collect(t, routesTestCode)
	require.Len(t, routes, 4)

	list := routes[0]
	assert.Equal(t, "get", list.Method)
	assert.Equal(t, "/api/users", list.Path)
	assert.Equal(t, "User", list.SchemaName)
	assert.Equal(t, "List users", list.Description)
	assert.Equal(t, "All users", list.ResponseDescription)
	assert.Equal(t, []types.ParameterDescriptor{
		{Name: "limit", Type: "number", Description: "Page size", In: types.InQuery},
		{Name: "q", Type: "string", Description: "Search text", In: types.InQuery},
	}, list.Parameters)
	assert.Equal(t, "routes.ts", list.SourceFile)
	assert.Equal(t, 6, list.SourceLine)

	get := routes[1]
	assert.Equal(t, "/api/users/:userId", get.Path)
	assert.Equal(t, "ErrorShape", get.ErrorSchemaName)
	assert.Equal(t, []types.StatusOverride{
		{Code: "404", Description: "Not found"},
		{Code: "500", Description: "Server error"},
	}, get.StatusOverrides)

	post := routes[2]
	assert.Equal(t, "post", post.Method)
	assert.Equal(t, "User", post.SchemaName)
	assert.Equal(t, "Create a user", post.Description)

	put := routes[3]
	assert.Equal(t, "put", put.Method)
	assert.Equal(t, "/api/users/:userId", put.Path)
	assert.Equal(t, []types.ParameterDescriptor{
		{Name: "userId", Type: "string", Description: "The user identifier", In: types.InPath},
	}, put.Parameters)
}

func TestCollector_SkipsUnmarkedHandlers(t *testing.T) {
	routes := collect(t, `
app.get('/a', (req, res) => { res.send() })
app.get('/b', (req, res) => {
  res.send()
  // schema: User
})
app.get('/c')
app.set('/d', (req, res) => {
  // schema: User
})
`)

	assert.Empty(t, routes)
}

func TestCollector_DocumentOrder(t *testing.T) {
	routes := collect(t, `
app.post('/b', (req, res) => {
  // schema: B
})
app.get('/a', (req, res) => {
  // schema: A
})
`)

	require.Len(t, routes, 2)
	assert.Equal(t, "/b", routes[0].Path)
	assert.Equal(t, "/a", routes[1].Path)
}

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ok       bool
		expected types.RouteDescriptor
	}{
		{
			name:     "schema strips whitespace",
			line:     "schema:  User Profile ",
			ok:       true,
			expected: types.RouteDescriptor{SchemaName: "UserProfile"},
		},
		{
			name:     "key is case and space insensitive",
			line:     "Error _Schema: Problem",
			ok:       true,
			expected: types.RouteDescriptor{ErrorSchemaName: "Problem"},
		},
		{
			name:     "description keeps inner spacing",
			line:     "description:  Get the  user ",
			ok:       true,
			expected: types.RouteDescriptor{Description: "Get the  user"},
		},
		{
			name:     "response description",
			line:     "response_description: The user",
			ok:       true,
			expected: types.RouteDescriptor{ResponseDescription: "The user"},
		},
		{
			name: "status code",
			line: "status_code: {404}: Not found",
			ok:   true,
			expected: types.RouteDescriptor{StatusOverrides: []types.StatusOverride{
				{Code: "404", Description: "Not found"},
			}},
		},
		{
			name:     "status code without braces",
			line:     "status_code: 404 Not found",
			ok:       false,
			expected: types.RouteDescriptor{},
		},
		{
			name: "query parameter",
			line: "query_parameter: {page}[number]: Page number",
			ok:   true,
			expected: types.RouteDescriptor{Parameters: []types.ParameterDescriptor{
				{Name: "page", Type: "number", Description: "Page number", In: types.InQuery},
			}},
		},
		{
			name: "parameter type defaults to string",
			line: "path_parameter: {id}: Identifier",
			ok:   true,
			expected: types.RouteDescriptor{Parameters: []types.ParameterDescriptor{
				{Name: "id", Type: "string", Description: "Identifier", In: types.InPath},
			}},
		},
		{
			name:     "empty value ignored",
			line:     "schema:",
			ok:       true,
			expected: types.RouteDescriptor{},
		},
		{
			name:     "unknown key",
			line:     "returns: something",
			ok:       false,
			expected: types.RouteDescriptor{},
		},
		{
			name:     "no colon",
			line:     "just a comment",
			ok:       false,
			expected: types.RouteDescriptor{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var route types.RouteDescriptor
			assert.Equal(t, tt.ok, ParseAnnotation(tt.line, &route))
			assert.Equal(t, tt.expected, route)
		})
	}
}

func TestParseAnnotation_RepeatedStatusCode(t *testing.T) {
	var route types.RouteDescriptor
	ParseAnnotation("status_code: {404}: Missing", &route)
	ParseAnnotation("status_code: {400}: Bad input", &route)
	ParseAnnotation("status_code: {404}: Not found", &route)

	assert.Equal(t, []types.StatusOverride{
		{Code: "404", Description: "Not found"},
		{Code: "400", Description: "Bad input"},
	}, route.StatusOverrides)
}
