// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema translates interface descriptors into JSON schemas and
// keeps them in discovery order.
package schema

import (
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Translator converts schema descriptors into OpenAPI component schemas.
type Translator struct {
	registry *Registry
}

// NewTranslator creates a new translator with an empty registry.
func NewTranslator() *Translator {
	return &Translator{
		registry: NewRegistry(),
	}
}

// Translate converts one interface descriptor into a closed object schema.
func (t *Translator) Translate(desc types.SchemaDescriptor) *types.Schema {
	closed := false
	s := &types.Schema{
		Properties:           types.NewSchemaMap(),
		AdditionalProperties: &closed,
		Title:                desc.Name,
		Type:                 types.TypeObject,
	}

	for _, v := range desc.Variables {
		if v.Name == "" {
			continue
		}
		s.Properties.Set(v.Name, propertySchema(desc.Name, v))
		if !v.Optional {
			s.Required = append(s.Required, v.Name)
		}
	}

	return s
}

// propertySchema builds the schema of one member.
func propertySchema(iface string, v types.VariableDescriptor) *types.Schema {
	title := iface + "." + v.Name

	if !v.Array {
		return &types.Schema{
			Title:  title,
			Type:   v.Type,
			Format: v.Format,
		}
	}

	return &types.Schema{
		Items: &types.Schema{
			Title:  title + ".[]",
			Type:   v.Type,
			Format: v.Format,
		},
		Title: title,
		Type:  types.TypeArray,
	}
}

// Registry returns the registry populated by TranslateAndRegister.
func (t *Translator) Registry() *Registry {
	return t.registry
}

// TranslateAndRegister translates a descriptor and adds it to the registry.
// A name seen before is deep-merged into the earlier schema.
func (t *Translator) TranslateAndRegister(desc types.SchemaDescriptor) *types.Schema {
	return t.registry.Add(desc.Name, t.Translate(desc))
}
