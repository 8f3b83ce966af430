// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

func buildDoc(t *testing.T, routes []types.RouteDescriptor, schemas []types.SchemaDescriptor) *types.OpenAPI {
	t.Helper()

	doc, err := NewBuilder(testConfig(), nil).Build(routes, schemas)
	require.NoError(t, err)
	return doc
}

func TestNewDiffer(t *testing.T) {
	assert.NotNil(t, NewDiffer())
}

func TestDiffer_Diff_NoDifferences(t *testing.T) {
	routes := []types.RouteDescriptor{{Method: "get", Path: "/users", SchemaName: "User"}}

	a := buildDoc(t, routes, []types.SchemaDescriptor{userSchema()})
	b := buildDoc(t, routes, []types.SchemaDescriptor{userSchema()})

	result := NewDiffer().Diff(a, b)
	assert.True(t, result.IsEmpty())
	assert.False(t, result.HasBreakingChanges)
	assert.Equal(t, "No changes detected", result.Summary)
}

func TestDiffer_Diff_AddedAndRemovedPaths(t *testing.T) {
	a := buildDoc(t, []types.RouteDescriptor{{Method: "get", Path: "/old", SchemaName: "User"}}, nil)
	b := buildDoc(t, []types.RouteDescriptor{{Method: "get", Path: "/new", SchemaName: "User"}}, nil)

	result := NewDiffer().Diff(a, b)

	require.Len(t, result.PathChanges, 2)
	assert.Equal(t, PathChange{Type: DiffTypeRemoved, Path: "/old", Method: "GET", Description: "Removed GET /old"}, result.PathChanges[0])
	assert.Equal(t, PathChange{Type: DiffTypeAdded, Path: "/new", Method: "GET", Description: "Added GET /new"}, result.PathChanges[1])
	assert.True(t, result.HasBreakingChanges)
	assert.Contains(t, result.Summary, "[BREAKING CHANGES DETECTED]")
}

func TestDiffer_Diff_AddedMethod(t *testing.T) {
	a := buildDoc(t, []types.RouteDescriptor{{Method: "get", Path: "/users", SchemaName: "User"}}, nil)
	b := buildDoc(t, []types.RouteDescriptor{
		{Method: "get", Path: "/users", SchemaName: "User"},
		{Method: "post", Path: "/users", SchemaName: "User"},
	}, nil)

	result := NewDiffer().Diff(a, b)

	require.Len(t, result.PathChanges, 1)
	assert.Equal(t, DiffTypeAdded, result.PathChanges[0].Type)
	assert.Equal(t, "POST", result.PathChanges[0].Method)
	assert.False(t, result.HasBreakingChanges)
}

func TestDiffer_Diff_ModifiedOperation(t *testing.T) {
	a := buildDoc(t, []types.RouteDescriptor{{Method: "get", Path: "/users", SchemaName: "User"}}, nil)
	b := buildDoc(t, []types.RouteDescriptor{{
		Method:          "get",
		Path:            "/users",
		SchemaName:      "User",
		StatusOverrides: []types.StatusOverride{{Code: "404", Description: "Not found"}},
	}}, nil)

	result := NewDiffer().Diff(a, b)

	require.Len(t, result.PathChanges, 1)
	assert.Equal(t, DiffTypeModified, result.PathChanges[0].Type)
	assert.Equal(t, "1 path(s) modified", result.Summary)
}

func TestDiffer_Diff_ParameterChange(t *testing.T) {
	a := buildDoc(t, []types.RouteDescriptor{{Method: "get", Path: "/users", SchemaName: "User"}}, nil)
	b := buildDoc(t, []types.RouteDescriptor{{
		Method:     "get",
		Path:       "/users",
		SchemaName: "User",
		Parameters: []types.ParameterDescriptor{{Name: "q", Type: "string", In: "query"}},
	}}, nil)

	result := NewDiffer().Diff(a, b)

	require.Len(t, result.PathChanges, 1)
	assert.Equal(t, DiffTypeModified, result.PathChanges[0].Type)
}

func TestDiffer_Diff_Schemas(t *testing.T) {
	changed := userSchema()
	changed.Variables[2].Optional = false

	a := buildDoc(t, nil, []types.SchemaDescriptor{userSchema(), {Name: "Gone"}})
	b := buildDoc(t, nil, []types.SchemaDescriptor{changed, {Name: "Fresh"}})

	result := NewDiffer().Diff(a, b)

	require.Len(t, result.SchemaChanges, 3)
	assert.Equal(t, SchemaChange{Type: DiffTypeModified, Name: "User", Description: "Modified schema: User"}, result.SchemaChanges[0])
	assert.Equal(t, DiffTypeRemoved, result.SchemaChanges[1].Type)
	assert.Equal(t, "Gone", result.SchemaChanges[1].Name)
	assert.Equal(t, DiffTypeAdded, result.SchemaChanges[2].Type)
	assert.Equal(t, "Fresh", result.SchemaChanges[2].Name)
	assert.True(t, result.HasBreakingChanges)
}

func TestDiffer_Diff_NestedPropertyChange(t *testing.T) {
	changed := userSchema()
	changed.Variables[0].Type = types.TypeNumber

	a := buildDoc(t, nil, []types.SchemaDescriptor{userSchema()})
	b := buildDoc(t, nil, []types.SchemaDescriptor{changed})

	result := NewDiffer().Diff(a, b)
	require.Len(t, result.SchemaChanges, 1)
	assert.Equal(t, DiffTypeModified, result.SchemaChanges[0].Type)
}

func TestDiffer_Diff_NilDocuments(t *testing.T) {
	doc := buildDoc(t, []types.RouteDescriptor{{Method: "get", Path: "/users", SchemaName: "User"}}, nil)

	result := NewDiffer().Diff(nil, doc)
	require.Len(t, result.PathChanges, 1)
	assert.Equal(t, DiffTypeAdded, result.PathChanges[0].Type)

	result = NewDiffer().Diff(doc, nil)
	require.Len(t, result.PathChanges, 1)
	assert.Equal(t, DiffTypeRemoved, result.PathChanges[0].Type)

	assert.True(t, NewDiffer().Diff(nil, nil).IsEmpty())
}

func TestDiffResult_IsEmpty(t *testing.T) {
	assert.True(t, (&DiffResult{}).IsEmpty())
	assert.False(t, (&DiffResult{PathChanges: []PathChange{{Type: DiffTypeAdded}}}).IsEmpty())
	assert.False(t, (&DiffResult{SchemaChanges: []SchemaChange{{Type: DiffTypeAdded}}}).IsEmpty())
}

func TestFormatDiff_Empty(t *testing.T) {
	assert.Equal(t, "No differences found.", FormatDiff(&DiffResult{}))
}

func TestFormatDiff_WithChanges(t *testing.T) {
	result := &DiffResult{
		PathChanges: []PathChange{
			{Type: DiffTypeRemoved, Path: "/z", Method: "GET"},
			{Type: DiffTypeAdded, Path: "/a", Method: "POST"},
		},
		SchemaChanges: []SchemaChange{
			{Type: DiffTypeModified, Name: "User"},
		},
		Summary: "summary",
	}

	out := FormatDiff(result)

	assert.Contains(t, out, "=== OpenAPI Diff ===")
	assert.Contains(t, out, "summary")
	assert.Contains(t, out, "+ POST /a\n- GET /z\n")
	assert.Contains(t, out, "~ User\n")
}
