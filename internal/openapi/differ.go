// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// PathChange represents a change to a path/operation.
type PathChange struct {
	Type        DiffType
	Path        string
	Method      string
	Description string
}

// SchemaChange represents a change to a schema.
type SchemaChange struct {
	Type        DiffType
	Name        string
	Description string
}

// DiffResult contains the differences between two OpenAPI documents.
type DiffResult struct {
	// PathChanges contains all path/operation changes.
	PathChanges []PathChange

	// SchemaChanges contains all schema changes.
	SchemaChanges []SchemaChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.PathChanges) == 0 && len(d.SchemaChanges) == 0
}

// Differ compares two OpenAPI documents.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff compares two OpenAPI documents and returns the differences.
// Changes are reported in the order paths and schemas appear in the documents.
func (d *Differ) Diff(a, b *types.OpenAPI) *DiffResult {
	result := &DiffResult{
		PathChanges:   []PathChange{},
		SchemaChanges: []SchemaChange{},
	}

	d.diffPaths(a, b, result)
	d.diffSchemas(a, b, result)

	result.HasBreakingChanges = d.detectBreakingChanges(result)
	result.Summary = d.generateSummary(result)

	return result
}

func pathsOf(doc *types.OpenAPI) *types.Paths {
	if doc == nil || doc.Paths == nil {
		return types.NewPaths()
	}
	return doc.Paths
}

func schemasOf(doc *types.OpenAPI) *types.SchemaMap {
	if doc == nil || doc.Components == nil || doc.Components.Schemas == nil {
		return types.NewSchemaMap()
	}
	return doc.Components.Schemas
}

// diffPaths compares the paths between two documents.
func (d *Differ) diffPaths(a, b *types.OpenAPI, result *DiffResult) {
	aPaths, bPaths := pathsOf(a), pathsOf(b)

	for pair := aPaths.Oldest(); pair != nil; pair = pair.Next() {
		bItem, exists := bPaths.Get(pair.Key)
		if !exists {
			for _, method := range pair.Value.Methods() {
				result.PathChanges = append(result.PathChanges, pathChange(DiffTypeRemoved, pair.Key, method))
			}
			continue
		}
		d.diffPathItem(pair.Key, pair.Value, bItem, result)
	}

	for pair := bPaths.Oldest(); pair != nil; pair = pair.Next() {
		if _, exists := aPaths.Get(pair.Key); exists {
			continue
		}
		for _, method := range pair.Value.Methods() {
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeAdded, pair.Key, method))
		}
	}
}

func pathChange(t DiffType, path, method string) PathChange {
	verb := map[DiffType]string{
		DiffTypeAdded:    "Added",
		DiffTypeRemoved:  "Removed",
		DiffTypeModified: "Modified",
	}[t]
	upper := strings.ToUpper(method)
	return PathChange{
		Type:        t,
		Path:        path,
		Method:      upper,
		Description: fmt.Sprintf("%s %s %s", verb, upper, path),
	}
}

// diffPathItem compares operations within a path item.
func (d *Differ) diffPathItem(path string, a, b *types.PathItem, result *DiffResult) {
	if a == nil {
		a = &types.PathItem{}
	}
	if b == nil {
		b = &types.PathItem{}
	}

	for _, method := range types.HTTPMethods {
		aOp, bOp := *a.Operation(method), *b.Operation(method)
		switch {
		case aOp == nil && bOp != nil:
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeAdded, path, method))
		case aOp != nil && bOp == nil:
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeRemoved, path, method))
		case aOp != nil && bOp != nil && d.operationModified(aOp, bOp):
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeModified, path, method))
		}
	}
}

// operationModified checks if an operation was modified.
func (d *Differ) operationModified(a, b *types.Operation) bool {
	if a.Description != b.Description || a.OperationID != b.OperationID {
		return true
	}

	if !reflect.DeepEqual(a.Tags, b.Tags) || !reflect.DeepEqual(a.Parameters, b.Parameters) {
		return true
	}

	if !reflect.DeepEqual(a.RequestBody, b.RequestBody) {
		return true
	}

	return !responsesEqual(a.Responses, b.Responses)
}

// responsesEqual compares two response maps including key order.
func responsesEqual(a, b *types.Responses) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() {
		return false
	}
	for pa, pb := a.Oldest(), b.Oldest(); pa != nil && pb != nil; pa, pb = pa.Next(), pb.Next() {
		if pa.Key != pb.Key || !reflect.DeepEqual(pa.Value, pb.Value) {
			return false
		}
	}
	return true
}

// diffSchemas compares the schemas between two documents.
func (d *Differ) diffSchemas(a, b *types.OpenAPI, result *DiffResult) {
	aSchemas, bSchemas := schemasOf(a), schemasOf(b)

	for pair := aSchemas.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		bSchema, exists := bSchemas.Get(name)
		if !exists {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeRemoved,
				Name:        name,
				Description: fmt.Sprintf("Removed schema: %s", name),
			})
		} else if d.schemaModified(pair.Value, bSchema) {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeModified,
				Name:        name,
				Description: fmt.Sprintf("Modified schema: %s", name),
			})
		}
	}

	for pair := bSchemas.Oldest(); pair != nil; pair = pair.Next() {
		if _, exists := aSchemas.Get(pair.Key); !exists {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeAdded,
				Name:        pair.Key,
				Description: fmt.Sprintf("Added schema: %s", pair.Key),
			})
		}
	}
}

// schemaModified checks if a schema was modified, recursing into
// properties and items.
func (d *Differ) schemaModified(a, b *types.Schema) bool {
	if a == nil || b == nil {
		return a != b
	}

	if a.Ref != b.Ref ||
		a.Type != b.Type ||
		a.Format != b.Format ||
		a.Title != b.Title ||
		a.Description != b.Description {
		return true
	}

	if !reflect.DeepEqual(a.AdditionalProperties, b.AdditionalProperties) {
		return true
	}

	if !reflect.DeepEqual(a.Required, b.Required) {
		return true
	}

	if d.schemaModified(a.Items, b.Items) {
		return true
	}

	aLen, bLen := 0, 0
	if a.Properties != nil {
		aLen = a.Properties.Len()
	}
	if b.Properties != nil {
		bLen = b.Properties.Len()
	}
	if aLen != bLen {
		return true
	}
	if aLen == 0 {
		return false
	}

	for pair := a.Properties.Oldest(); pair != nil; pair = pair.Next() {
		other, ok := b.Properties.Get(pair.Key)
		if !ok || d.schemaModified(pair.Value, other) {
			return true
		}
	}

	return false
}

// detectBreakingChanges checks if any changes are breaking.
func (d *Differ) detectBreakingChanges(result *DiffResult) bool {
	// Removed paths are breaking
	for _, change := range result.PathChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	// Removed schemas are breaking
	for _, change := range result.SchemaChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	return false
}

// generateSummary creates a human-readable summary of changes.
func (d *Differ) generateSummary(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	var sb strings.Builder

	pathAdded, pathRemoved, pathModified := 0, 0, 0
	for _, c := range result.PathChanges {
		switch c.Type {
		case DiffTypeAdded:
			pathAdded++
		case DiffTypeRemoved:
			pathRemoved++
		case DiffTypeModified:
			pathModified++
		}
	}

	schemaAdded, schemaRemoved, schemaModified := 0, 0, 0
	for _, c := range result.SchemaChanges {
		switch c.Type {
		case DiffTypeAdded:
			schemaAdded++
		case DiffTypeRemoved:
			schemaRemoved++
		case DiffTypeModified:
			schemaModified++
		}
	}

	var parts []string

	if pathAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) added", pathAdded))
	}
	if pathRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) removed", pathRemoved))
	}
	if pathModified > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) modified", pathModified))
	}
	if schemaAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d schema(s) added", schemaAdded))
	}
	if schemaRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d schema(s) removed", schemaRemoved))
	}
	if schemaModified > 0 {
		parts = append(parts, fmt.Sprintf("%d schema(s) modified", schemaModified))
	}

	sb.WriteString(strings.Join(parts, ", "))

	if result.HasBreakingChanges {
		sb.WriteString(" [BREAKING CHANGES DETECTED]")
	}

	return sb.String()
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== OpenAPI Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.PathChanges) > 0 {
		sb.WriteString("--- Path Changes ---\n")

		changes := make([]PathChange, len(result.PathChanges))
		copy(changes, result.PathChanges)
		sort.SliceStable(changes, func(i, j int) bool {
			if changes[i].Path != changes[j].Path {
				return changes[i].Path < changes[j].Path
			}
			return changes[i].Method < changes[j].Method
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s %s\n", changeSymbol(c.Type), c.Method, c.Path))
		}
		sb.WriteString("\n")
	}

	if len(result.SchemaChanges) > 0 {
		sb.WriteString("--- Schema Changes ---\n")

		changes := make([]SchemaChange, len(result.SchemaChanges))
		copy(changes, result.SchemaChanges)
		sort.SliceStable(changes, func(i, j int) bool {
			return changes[i].Name < changes[j].Name
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s\n", changeSymbol(c.Type), c.Name))
		}
	}

	return sb.String()
}

func changeSymbol(t DiffType) string {
	switch t {
	case DiffTypeAdded:
		return "+ "
	case DiffTypeRemoved:
		return "- "
	case DiffTypeModified:
		return "~ "
	}
	return "  "
}
