// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Merge deep-merges src into dst and returns the result. Properties are
// unioned key by key in first-seen order, non-empty scalars of src
// overwrite, and required names are unioned. A nil dst yields a copy of src.
func Merge(dst, src *types.Schema) *types.Schema {
	if src == nil {
		return dst
	}
	if dst == nil {
		return Clone(src)
	}

	if src.Ref != "" {
		dst.Ref = src.Ref
	}
	if src.Items != nil {
		dst.Items = Merge(dst.Items, src.Items)
	}
	if src.Properties != nil {
		if dst.Properties == nil {
			dst.Properties = types.NewSchemaMap()
		}
		MergeMap(dst.Properties, src.Properties)
	}
	dst.Required = UnionStrings(dst.Required, src.Required)
	if src.AdditionalProperties != nil {
		v := *src.AdditionalProperties
		dst.AdditionalProperties = &v
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Type != "" {
		dst.Type = src.Type
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Description != "" {
		dst.Description = src.Description
	}

	return dst
}

// MergeMap deep-merges every entry of src into dst. New keys are appended.
func MergeMap(dst, src *types.SchemaMap) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		existing, _ := dst.Get(pair.Key)
		dst.Set(pair.Key, Merge(existing, pair.Value))
	}
}

// Clone returns a deep copy of s.
func Clone(s *types.Schema) *types.Schema {
	if s == nil {
		return nil
	}

	c := *s
	c.Items = Clone(s.Items)
	if s.Properties != nil {
		c.Properties = types.NewSchemaMap()
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			c.Properties.Set(pair.Key, Clone(pair.Value))
		}
	}
	if s.Required != nil {
		c.Required = append([]string(nil), s.Required...)
	}
	if s.AdditionalProperties != nil {
		v := *s.AdditionalProperties
		c.AdditionalProperties = &v
	}
	return &c
}

// UnionStrings appends the values of b missing from a, keeping first-seen order.
func UnionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}

	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			a = append(a, s)
		}
	}
	return a
}
