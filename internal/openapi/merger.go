// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/ts2openapi/ts2openapi/internal/schema"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// MergeDocument deep-merges src into dst and returns dst.
// Object-valued keys are unioned key by key, non-empty scalars of src
// overwrite, and new map keys are appended after existing ones.
func MergeDocument(dst, src *types.OpenAPI) *types.OpenAPI {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &types.OpenAPI{}
	}

	if src.OpenAPI != "" {
		dst.OpenAPI = src.OpenAPI
	}
	mergeInfo(&dst.Info, src.Info)

	if src.Paths != nil {
		if dst.Paths == nil {
			dst.Paths = types.NewPaths()
		}
		MergePaths(dst.Paths, src.Paths)
	}

	dst.Servers = mergeServers(dst.Servers, src.Servers)

	if src.Components != nil && src.Components.Schemas != nil {
		if dst.Components == nil {
			dst.Components = &types.Components{}
		}
		if dst.Components.Schemas == nil {
			dst.Components.Schemas = types.NewSchemaMap()
		}
		schema.MergeMap(dst.Components.Schemas, src.Components.Schemas)
	}

	return dst
}

func mergeInfo(dst *types.Info, src types.Info) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.XComment != "" {
		dst.XComment = src.XComment
	}
}

// mergeServers merges server lists by URL, keeping first-seen order.
func mergeServers(dst, src []types.Server) []types.Server {
	for _, s := range src {
		found := false
		for i := range dst {
			if dst[i].URL == s.URL {
				if s.Description != "" {
					dst[i].Description = s.Description
				}
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

// MergePaths deep-merges every path item of src into dst.
func MergePaths(dst, src *types.Paths) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		existing, _ := dst.Get(pair.Key)
		dst.Set(pair.Key, MergePathItem(existing, pair.Value))
	}
}

// MergePathItem merges src operations into dst, method by method.
func MergePathItem(dst, src *types.PathItem) *types.PathItem {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &types.PathItem{}
	}

	for _, method := range types.HTTPMethods {
		from := src.Operation(method)
		if *from == nil {
			continue
		}
		to := dst.Operation(method)
		*to = MergeOperation(*to, *from)
	}

	return dst
}

// MergeOperation deep-merges src into dst. Tags are unioned, parameters
// are merged by location and name.
func MergeOperation(dst, src *types.Operation) *types.Operation {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &types.Operation{}
	}

	dst.Tags = schema.UnionStrings(dst.Tags, src.Tags)
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.OperationID != "" {
		dst.OperationID = src.OperationID
	}
	dst.Parameters = MergeParameters(dst.Parameters, src.Parameters)

	if src.RequestBody != nil {
		if dst.RequestBody == nil {
			dst.RequestBody = &types.RequestBody{}
		}
		if src.RequestBody.Required {
			dst.RequestBody.Required = true
		}
		dst.RequestBody.Content = mergeContent(dst.RequestBody.Content, src.RequestBody.Content)
	}

	if src.Responses != nil {
		if dst.Responses == nil {
			dst.Responses = types.NewResponses()
		}
		MergeResponses(dst.Responses, src.Responses)
	}

	return dst
}

// MergeParameters merges src into dst keyed by (in, name). A parameter
// already present is overlaid in place; new ones are appended.
func MergeParameters(dst, src []types.Parameter) []types.Parameter {
	for _, p := range src {
		found := false
		for i := range dst {
			if dst[i].In == p.In && dst[i].Name == p.Name {
				dst[i] = mergeParameter(dst[i], p)
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, p)
		}
	}
	return dst
}

func mergeParameter(dst, src types.Parameter) types.Parameter {
	dst.Schema = schema.Merge(schema.Clone(dst.Schema), src.Schema)
	if src.Required {
		dst.Required = true
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	return dst
}

// MergeResponses deep-merges every response of src into dst.
func MergeResponses(dst, src *types.Responses) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		existing, ok := dst.Get(pair.Key)
		if !ok {
			dst.Set(pair.Key, &types.Response{
				Description: pair.Value.Description,
				Content:     mergeContent(nil, pair.Value.Content),
			})
			continue
		}
		if pair.Value.Description != "" {
			existing.Description = pair.Value.Description
		}
		existing.Content = mergeContent(existing.Content, pair.Value.Content)
	}
}

// mergeContent deep-merges media type maps.
func mergeContent(dst, src map[string]types.MediaType) map[string]types.MediaType {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]types.MediaType, len(src))
	}
	for mediaType, mt := range src {
		existing := dst[mediaType]
		existing.Schema = schema.Merge(existing.Schema, mt.Schema)
		dst[mediaType] = existing
	}
	return dst
}
