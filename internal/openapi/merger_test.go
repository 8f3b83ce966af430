// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

func docWithPath(path, method string, op *types.Operation) *types.OpenAPI {
	item := &types.PathItem{}
	*item.Operation(method) = op

	doc := &types.OpenAPI{Paths: types.NewPaths()}
	doc.Paths.Set(path, item)
	return doc
}

func TestMergeDocument_NilSource(t *testing.T) {
	dst := &types.OpenAPI{OpenAPI: "3.0.0"}
	assert.Same(t, dst, MergeDocument(dst, nil))
}

func TestMergeDocument_NilDestination(t *testing.T) {
	src := docWithPath("/a", "get", &types.Operation{Description: "a"})

	out := MergeDocument(nil, src)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Paths.Len())
}

func TestMergeDocument_ScalarsOverwrite(t *testing.T) {
	dst := &types.OpenAPI{
		OpenAPI: "3.0.0",
		Info:    types.Info{Title: "Old", Version: "1.0.0", Description: "keep"},
	}
	src := &types.OpenAPI{
		Info: types.Info{Title: "New", Version: "2.0.0"},
	}

	MergeDocument(dst, src)

	assert.Equal(t, "3.0.0", dst.OpenAPI)
	assert.Equal(t, "New", dst.Info.Title)
	assert.Equal(t, "2.0.0", dst.Info.Version)
	assert.Equal(t, "keep", dst.Info.Description)
}

func TestMergeDocument_MethodsCoexist(t *testing.T) {
	dst := docWithPath("/users", "get", &types.Operation{Description: "list"})
	src := docWithPath("/users", "post", &types.Operation{Description: "create"})

	MergeDocument(dst, src)

	item, ok := dst.Paths.Get("/users")
	require.True(t, ok)
	assert.Equal(t, "list", item.Get.Description)
	assert.Equal(t, "create", item.Post.Description)
}

func TestMergeDocument_PathsKeepOrder(t *testing.T) {
	dst := docWithPath("/b", "get", &types.Operation{})
	MergeDocument(dst, docWithPath("/a", "get", &types.Operation{}))
	MergeDocument(dst, docWithPath("/b", "post", &types.Operation{}))

	var keys []string
	for pair := dst.Paths.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"/b", "/a"}, keys)
}

func TestMergeDocument_Schemas(t *testing.T) {
	dst := &types.OpenAPI{Components: &types.Components{Schemas: types.NewSchemaMap()}}
	dst.Components.Schemas.Set("User", &types.Schema{Title: "User", Required: []string{"name"}})

	src := &types.OpenAPI{Components: &types.Components{Schemas: types.NewSchemaMap()}}
	src.Components.Schemas.Set("User", &types.Schema{Description: "A user", Required: []string{"email"}})
	src.Components.Schemas.Set("Order", &types.Schema{Title: "Order"})

	MergeDocument(dst, src)

	require.Equal(t, 2, dst.Components.Schemas.Len())
	user := dst.Components.Schemas.Value("User")
	assert.Equal(t, "User", user.Title)
	assert.Equal(t, "A user", user.Description)
	assert.Equal(t, []string{"name", "email"}, user.Required)
}

func TestMergeDocument_Servers(t *testing.T) {
	dst := &types.OpenAPI{Servers: []types.Server{{URL: "http://a"}}}
	src := &types.OpenAPI{Servers: []types.Server{
		{URL: "http://a", Description: "A"},
		{URL: "http://b"},
	}}

	MergeDocument(dst, src)

	assert.Equal(t, []types.Server{
		{URL: "http://a", Description: "A"},
		{URL: "http://b"},
	}, dst.Servers)
}

func TestMergeOperation(t *testing.T) {
	dst := &types.Operation{
		Tags:        []string{"User"},
		Description: "old",
		Parameters: []types.Parameter{
			{Name: "id", In: "path", Schema: &types.Schema{Type: "string"}, Required: true},
		},
		Responses: types.NewResponses(),
	}
	dst.Responses.Set("200", &types.Response{Description: "ok"})

	src := &types.Operation{
		Tags:        []string{"User", "Admin"},
		OperationID: "getUser",
		Parameters: []types.Parameter{
			{Name: "id", In: "path", Schema: &types.Schema{Type: "number"}, Description: "Identifier"},
			{Name: "id", In: "query", Schema: &types.Schema{Type: "string"}},
		},
		RequestBody: &types.RequestBody{
			Required: true,
			Content:  map[string]types.MediaType{MediaTypeJSON: {Schema: types.RefTo("User")}},
		},
		Responses: types.NewResponses(),
	}
	src.Responses.Set("404", &types.Response{Description: "missing"})
	src.Responses.Set("200", &types.Response{
		Content: map[string]types.MediaType{MediaTypeJSON: {Schema: types.RefTo("User")}},
	})

	out := MergeOperation(dst, src)

	assert.Same(t, dst, out)
	assert.Equal(t, []string{"User", "Admin"}, out.Tags)
	assert.Equal(t, "old", out.Description)
	assert.Equal(t, "getUser", out.OperationID)

	require.Len(t, out.Parameters, 2)
	assert.Equal(t, "number", out.Parameters[0].Schema.Type)
	assert.True(t, out.Parameters[0].Required)
	assert.Equal(t, "Identifier", out.Parameters[0].Description)
	assert.Equal(t, "query", out.Parameters[1].In)

	require.NotNil(t, out.RequestBody)
	assert.True(t, out.RequestBody.Required)

	var codes []string
	for pair := out.Responses.Oldest(); pair != nil; pair = pair.Next() {
		codes = append(codes, pair.Key)
	}
	assert.Equal(t, []string{"200", "404"}, codes)

	ok := out.Responses.Value("200")
	assert.Equal(t, "ok", ok.Description)
	assert.Equal(t, "#/components/schemas/User", ok.Content[MediaTypeJSON].Schema.Ref)
}

func TestMergeParameters_DoesNotAliasSource(t *testing.T) {
	src := []types.Parameter{{Name: "q", In: "query", Schema: &types.Schema{Type: "string"}}}

	merged := MergeParameters(nil, src)
	merged = MergeParameters(merged, []types.Parameter{{Name: "q", In: "query", Schema: &types.Schema{Type: "number"}}})

	assert.Equal(t, "number", merged[0].Schema.Type)
	assert.Equal(t, "string", src[0].Schema.Type)
}
