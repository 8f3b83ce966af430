// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts2openapi/ts2openapi/internal/config"
	"github.com/ts2openapi/ts2openapi/internal/parser"
)

const modelsSource = `export interface User {
  // swagger
  name: string;
  surname: string;
  age?: number;
}

export interface ErrorShape {
  // swagger
  message: string;
  code: number;
}

export interface Event {
  // swagger
  history: Date[];
  at: Date;
  tags?: string[];
}
`

const routesSource = `import express from 'express';

const app = express();

app.get('/api/users/:userId', (req, res) => {
  // schema: User
  // description: Get user by id
  // error_schema: ErrorShape
  // status_code: {404}: Not found
  res.json({});
});

app.get('/api/users', (req, res) => {
  // schema: User
  // description: List users
  // query_parameter: {limit}[number]: Page size
  res.json([]);
});

app.post('/api/users', (req, res) => {
  // schema: User
  res.json({});
});

app.get('/health', (req, res) => {
  res.send('ok');
});
`

// writeFixtures writes the model and route files and returns their paths.
func writeFixtures(t *testing.T) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	models := filepath.Join(dir, "models.ts")
	routes := filepath.Join(dir, "routes.ts")
	require.NoError(t, os.WriteFile(models, []byte(modelsSource), 0644))
	require.NoError(t, os.WriteFile(routes, []byte(routesSource), 0644))

	return dir, []string{models, routes}
}

func newConfig(paths []string) *config.Config {
	return &config.Config{
		PathList: paths,
		APIName:  "Users API",
		Version:  "1.2.3",
		Format:   "json",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// lookup walks a decoded JSON document by keys.
func lookup(t *testing.T, v any, keys ...string) any {
	t.Helper()

	for _, k := range keys {
		m, ok := v.(map[string]any)
		require.True(t, ok, "expected object at %q", k)
		v, ok = m[k]
		require.True(t, ok, "missing key %q", k)
	}
	return v
}

func TestGenerate_EndToEnd(t *testing.T) {
	_, paths := writeFixtures(t)

	result, err := New(newConfig(paths), discardLogger()).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, paths, result.Files)
	assert.Len(t, result.Schemas, 3)
	assert.Len(t, result.Routes, 3)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Output), &doc))

	assert.Equal(t, "3.0.0", doc["openapi"])
	assert.Equal(t, "Users API", lookup(t, doc, "info", "title"))

	byID := lookup(t, doc, "paths", "/api/users/{userId}", "get").(map[string]any)
	assert.NotContains(t, byID, "requestBody")

	params := byID["parameters"].([]any)
	require.Len(t, params, 1)
	param := params[0].(map[string]any)
	assert.Equal(t, "userId", param["name"])
	assert.Equal(t, "path", param["in"])
	assert.Equal(t, true, param["required"])
	assert.Equal(t, "string", lookup(t, param, "schema", "type"))

	assert.Equal(t, "Not found", lookup(t, byID, "responses", "404", "description"))
	assert.Equal(t, "#/components/schemas/ErrorShape",
		lookup(t, byID, "responses", "404", "content", "application/json", "schema", "$ref"))
	assert.Equal(t, "#/components/schemas/User",
		lookup(t, byID, "responses", "200", "content", "application/json", "schema", "$ref"))

	list := lookup(t, doc, "paths", "/api/users", "get")
	assert.Equal(t, "array", lookup(t, list, "responses", "200", "content", "application/json", "schema", "type"))
	assert.Equal(t, "#/components/schemas/User",
		lookup(t, list, "responses", "200", "content", "application/json", "schema", "items", "$ref"))
	assert.Equal(t, "number", lookup(t, list, "parameters").([]any)[0].(map[string]any)["schema"].(map[string]any)["type"])

	create := lookup(t, doc, "paths", "/api/users", "post")
	assert.Equal(t, true, lookup(t, create, "requestBody", "required"))

	assert.Equal(t, []any{"name", "surname"}, lookup(t, doc, "components", "schemas", "User", "required"))
	assert.Equal(t, false, lookup(t, doc, "components", "schemas", "User", "additionalProperties"))

	history := lookup(t, doc, "components", "schemas", "Event", "properties", "history")
	assert.Equal(t, "array", lookup(t, history, "type"))
	assert.Equal(t, "date-time", lookup(t, history, "items", "format"))
	assert.Equal(t, "Event.history.[]", lookup(t, history, "items", "title"))

	assert.Equal(t, "date-time", lookup(t, doc, "components", "schemas", "Event", "properties", "at", "format"))
}

func TestGenerate_Deterministic(t *testing.T) {
	_, paths := writeFixtures(t)
	cfg := newConfig(paths)

	first, err := New(cfg, discardLogger()).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg, discardLogger()).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Output, second.Output)
}

func TestGenerate_YAML(t *testing.T) {
	_, paths := writeFixtures(t)
	cfg := newConfig(paths)
	cfg.Format = "yaml"

	result, err := New(cfg, discardLogger()).Generate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Output, "openapi: 3.0.0")
}

func TestGenerate_Directory(t *testing.T) {
	dir, _ := writeFixtures(t)

	result, err := New(newConfig([]string{dir}), discardLogger()).Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Files, 2)
	assert.Len(t, result.Routes, 3)
}

func TestGenerate_MissingSourcePath(t *testing.T) {
	cfg := newConfig([]string{filepath.Join(t.TempDir(), "missing.ts")})

	_, err := New(cfg, discardLogger()).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidAPIPath))
}

func TestGenerate_MissingRequiredField(t *testing.T) {
	_, paths := writeFixtures(t)
	cfg := newConfig(paths)
	cfg.APIName = ""

	_, err := New(cfg, discardLogger()).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfigFile))
}

func TestGenerate_ParseErrorAborts(t *testing.T) {
	dir, paths := writeFixtures(t)
	broken := filepath.Join(dir, "broken.ts")
	require.NoError(t, os.WriteFile(broken, []byte("app.get('/x', (req, res) => {\n"), 0644))

	_, err := New(newConfig(append(paths, broken)), discardLogger()).Generate(context.Background())
	require.Error(t, err)

	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestRun_WritesOutput(t *testing.T) {
	dir, paths := writeFixtures(t)
	cfg := newConfig(paths)
	cfg.Output = filepath.Join(dir, "out", "openapi.json")

	result, err := Run(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.True(t, result.Written)

	content, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, result.Output, string(content))
}

func TestRun_WriteFailureIsLogged(t *testing.T) {
	dir, paths := writeFixtures(t)
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))

	cfg := newConfig(paths)
	cfg.Output = filepath.Join(blocker, "openapi.json")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	result, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Written)
	assert.NotEmpty(t, result.Output)
	assert.Contains(t, logs.String(), "failed to write document")
}
