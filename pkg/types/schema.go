// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// JSON schema primitive types produced by the translator.
const (
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeString  = "string"
)

// FormatDateTime tags members declared as Date.
const FormatDateTime = "date-time"

// SchemaDescriptor is the structural description of one marked interface.
type SchemaDescriptor struct {
	// Name is the interface name
	Name string `json:"name" yaml:"name"`

	// Variables are the interface members in declaration order
	Variables []VariableDescriptor `json:"variables" yaml:"variables"`

	// SourceFile is the file the interface was found in
	SourceFile string `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`

	// SourceLine is the line number within SourceFile
	SourceLine int `json:"sourceLine,omitempty" yaml:"sourceLine,omitempty"`
}

// VariableDescriptor describes one interface member.
type VariableDescriptor struct {
	// Name is the member name
	Name string `json:"name" yaml:"name"`

	// Type is the member type, or the element type when Array is set
	Type string `json:"type" yaml:"type"`

	// Optional is set for members declared with ?
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Array is set for members declared as T[]
	Array bool `json:"array,omitempty" yaml:"array,omitempty"`

	// Format is "date-time" for Date members (or Date[] elements)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Schema represents an OpenAPI schema object.
// Field order matches the emitted key order.
type Schema struct {
	// Ref is a reference to another schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Items is the schema for array items
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties maps property names to their schemas, in declaration order
	Properties *SchemaMap `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required is a list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// AdditionalProperties is false for closed interface schemas
	AdditionalProperties *bool `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Title is a short title for the schema
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Type is the data type (string, number, boolean, array, object)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (date-time)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Description is a detailed description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SchemaRefPrefix is the JSON pointer prefix of component schemas.
const SchemaRefPrefix = "#/components/schemas/"

// RefTo returns a schema referencing the named component schema.
func RefTo(name string) *Schema {
	return &Schema{Ref: SchemaRefPrefix + name}
}
