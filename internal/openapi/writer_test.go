// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

func createTestDoc(t *testing.T) *types.OpenAPI {
	t.Helper()

	cfg := testConfig()
	cfg.Servers = nil
	routes := []types.RouteDescriptor{
		{Method: "get", Path: "/users", SchemaName: "User", Description: "List users"},
		{Method: "get", Path: "/users/:userId", SchemaName: "User", Description: "Get user by id"},
	}

	doc, err := NewBuilder(cfg, nil).Build(routes, []types.SchemaDescriptor{userSchema()})
	require.NoError(t, err)
	return doc
}

func TestNewWriter(t *testing.T) {
	writer := NewWriter()
	assert.NotNil(t, writer)
	assert.Equal(t, 2, writer.Indent)
}

func TestWriter_WriteYAML(t *testing.T) {
	writer := NewWriter()

	var buf bytes.Buffer
	err := writer.WriteYAML(createTestDoc(t), &buf)

	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, "openapi: 3.0.0")
	assert.Contains(t, output, "title: Test API")
	assert.Contains(t, output, "/users/{userId}:")
	assert.Contains(t, output, "$ref: '#/components/schemas/User'")
}

func TestWriter_WriteJSON(t *testing.T) {
	writer := NewWriter()

	var buf bytes.Buffer
	err := writer.WriteJSON(createTestDoc(t), &buf)

	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, `"openapi": "3.0.0"`)
	assert.Contains(t, output, `"x-comment": "`+Attribution+`"`)
	assert.Contains(t, output, "\n  \"info\": {")
	assert.Contains(t, output, `"additionalProperties": false`)
	assert.NotContains(t, output, `"servers"`)
}

func TestWriter_WriteJSON_KeyOrder(t *testing.T) {
	out, err := NewWriter().ToJSON(createTestDoc(t))
	require.NoError(t, err)

	ordered := []string{
		`"openapi"`,
		`"info"`,
		`"paths"`,
		`"/users"`,
		`"/users/{userId}"`,
		`"components"`,
		`"User"`,
		`"properties"`,
		`"name"`,
		`"surname"`,
		`"age"`,
		`"required"`,
		`"additionalProperties"`,
	}

	last := -1
	for _, key := range ordered {
		idx := strings.Index(out[last+1:], key)
		require.GreaterOrEqual(t, idx, 0, "missing %s after offset %d", key, last)
		last += idx + 1
	}
}

func TestWriter_Deterministic(t *testing.T) {
	writer := NewWriter()

	first, err := writer.ToJSON(createTestDoc(t))
	require.NoError(t, err)
	second, err := writer.ToJSON(createTestDoc(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstYAML, err := writer.ToYAML(createTestDoc(t))
	require.NoError(t, err)
	secondYAML, err := writer.ToYAML(createTestDoc(t))
	require.NoError(t, err)
	assert.Equal(t, firstYAML, secondYAML)
}

func TestWriter_WriteFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		format   string
		contains string
	}{
		{"explicit yaml", "spec.out", "yaml", "openapi: 3.0.0"},
		{"explicit json", "spec.out", "json", `"openapi": "3.0.0"`},
		{"infer yaml", "spec.yaml", "", "openapi: 3.0.0"},
		{"infer yml", "spec.yml", "", "openapi: 3.0.0"},
		{"infer json", "spec.json", "", `"openapi": "3.0.0"`},
		{"default json", "spec", "", `"openapi": "3.0.0"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)

			err := NewWriter().WriteFile(createTestDoc(t), path, tt.format)
			require.NoError(t, err)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.contains)
		})
	}
}

func TestWriter_WriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "openapi.json")

	err := NewWriter().WriteFile(createTestDoc(t), path, "")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriter_WriteFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.txt")

	err := NewWriter().WriteFile(createTestDoc(t), path, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWriter_Marshal(t *testing.T) {
	writer := NewWriter()
	doc := createTestDoc(t)

	asJSON, err := writer.Marshal(doc, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(asJSON, "{"))

	asYAML, err := writer.Marshal(doc, "YAML")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(asYAML, "openapi:"))
}

func TestWriter_CustomIndent(t *testing.T) {
	writer := &Writer{Indent: 4}

	out, err := writer.ToJSON(createTestDoc(t))
	require.NoError(t, err)
	assert.Contains(t, out, "\n    \"title\": \"Test API\"")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("a"))
}

func TestReadFile_NonExistent(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestReadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: [unclosed"), 0644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"openapi.json", "openapi.yaml", "openapi.spec"} {
		t.Run(name, func(t *testing.T) {
			doc := createTestDoc(t)
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, NewWriter().WriteFile(doc, path, ""))

			read, err := ReadFile(path)
			require.NoError(t, err)

			assert.Equal(t, doc.Info, read.Info)
			require.NotNil(t, read.Paths)
			assert.Equal(t, 2, read.Paths.Len())

			user := read.Components.Schemas.Value("User")
			require.NotNil(t, user)
			assert.Equal(t, []string{"name", "surname"}, user.Required)

			diff := NewDiffer().Diff(doc, read)
			assert.True(t, diff.IsEmpty(), diff.Summary)
		})
	}
}
