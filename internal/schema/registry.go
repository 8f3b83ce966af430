// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sync"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Registry stores discovered schemas by name in discovery order.
type Registry struct {
	mu      sync.RWMutex
	schemas *types.SchemaMap
}

// NewRegistry creates a new schema registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: types.NewSchemaMap(),
	}
}

// Add adds a schema to the registry and returns the stored schema.
// If the name is already registered, schema is deep-merged over the
// existing entry, which keeps its position.
func (r *Registry) Add(name string, schema *types.Schema) *types.Schema {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, _ := r.schemas.Get(name)
	merged := Merge(existing, schema)
	r.schemas.Set(name, merged)
	return merged
}

// Get returns a schema by name.
func (r *Registry) Get(name string) (*types.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.schemas.Get(name)
}

// Has checks if a schema exists in the registry.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas.Get(name)
	return ok
}

// Names returns all schema names in discovery order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, r.schemas.Len())
	for pair := r.schemas.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Count returns the number of schemas in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.schemas.Len()
}

// Clear removes all schemas from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas = types.NewSchemaMap()
}

// Merge adds all schemas from another registry, in its order.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}

	other.mu.RLock()
	defer other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	MergeMap(r.schemas, other.schemas)
}

// Schemas returns a deep copy of the registered schemas as an ordered map.
func (r *Registry) Schemas() *types.SchemaMap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := types.NewSchemaMap()
	for pair := r.schemas.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, Clone(pair.Value))
	}
	return out
}
