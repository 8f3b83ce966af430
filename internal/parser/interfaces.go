// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// SchemaMarker is the comment text that opts an interface into extraction.
const SchemaMarker = "swagger"

// CollectMarkedInterfaces returns, in document order, the interface
// declarations whose first member is preceded by the schema marker comment.
func (pf *ParsedFile) CollectMarkedInterfaces() []*sitter.Node {
	var nodes []*sitter.Node

	Walk(pf.RootNode, func(n *sitter.Node) bool {
		if n.Type() == "interface_declaration" && pf.isMarked(n) {
			nodes = append(nodes, n)
		}
		return true
	})

	return nodes
}

// isMarked checks the comments leading the first member of an interface body.
func (pf *ParsedFile) isMarked(iface *sitter.Node) bool {
	body := interfaceBody(iface)
	if body == nil || FirstMember(body) == nil {
		return false
	}

	for _, c := range LeadingComments(body) {
		if IsSchemaMarker(c.Content(pf.Content)) {
			return true
		}
	}
	return false
}

// IsSchemaMarker reports whether a raw comment is the schema marker: its
// text, with delimiters and all whitespace removed, lower-cased, is "swagger".
func IsSchemaMarker(raw string) bool {
	text := strings.Join(CommentLines(raw), "")
	return strings.ToLower(strings.Join(strings.Fields(text), "")) == SchemaMarker
}

// interfaceBody returns the body node of an interface_declaration.
func interfaceBody(iface *sitter.Node) *sitter.Node {
	if body := iface.ChildByFieldName("body"); body != nil {
		return body
	}
	for i := 0; i < int(iface.NamedChildCount()); i++ {
		child := iface.NamedChild(i)
		switch child.Type() {
		case "interface_body", "object_type":
			return child
		}
	}
	return nil
}

// ExtractSchemaDescriptor builds the schema descriptor of an interface
// declaration. Only property signatures with a plain identifier name are kept.
func (pf *ParsedFile) ExtractSchemaDescriptor(iface *sitter.Node) types.SchemaDescriptor {
	desc := types.SchemaDescriptor{}
	desc.SourceFile, desc.SourceLine = pf.Locate(iface)

	if name := iface.ChildByFieldName("name"); name != nil {
		desc.Name = name.Content(pf.Content)
	}

	body := interfaceBody(iface)
	if body == nil {
		return desc
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() != "property_signature" {
			continue
		}
		if v, ok := pf.variableDescriptor(member); ok {
			desc.Variables = append(desc.Variables, v)
		}
	}

	return desc
}

// variableDescriptor converts a property_signature node.
func (pf *ParsedFile) variableDescriptor(member *sitter.Node) (types.VariableDescriptor, bool) {
	nameNode := member.ChildByFieldName("name")
	if nameNode == nil || nameNode.Type() != "property_identifier" {
		return types.VariableDescriptor{}, false
	}

	v := types.VariableDescriptor{
		Name: nameNode.Content(pf.Content),
		Type: types.TypeString,
	}

	for i := 0; i < int(member.ChildCount()); i++ {
		if member.Child(i).Type() == "?" {
			v.Optional = true
		}
	}

	typeNode := annotatedType(member)
	if typeNode == nil {
		return v, true
	}

	v.Type = pf.TypeKind(typeNode)
	if v.Type == types.TypeArray {
		elem := typeNode.NamedChild(0)
		if elem != nil {
			v.Array = true
			v.Type = pf.TypeKind(elem)
			if pf.isDate(elem) {
				v.Format = types.FormatDateTime
			}
		}
	} else if pf.isDate(typeNode) {
		v.Format = types.FormatDateTime
	}

	return v, true
}

// annotatedType returns the type node inside a member's type_annotation.
func annotatedType(member *sitter.Node) *sitter.Node {
	ann := member.ChildByFieldName("type")
	if ann == nil {
		return nil
	}
	if ann.Type() != "type_annotation" {
		return ann
	}
	if ann.NamedChildCount() == 0 {
		return nil
	}
	return ann.NamedChild(0)
}

// TypeKind maps a type node to boolean, number, array, object or string.
// Anything not recognised, including the string keyword, is a string.
func (pf *ParsedFile) TypeKind(n *sitter.Node) string {
	switch n.Type() {
	case "predefined_type":
		switch n.Content(pf.Content) {
		case "boolean":
			return types.TypeBoolean
		case "number":
			return types.TypeNumber
		case "object":
			return types.TypeObject
		}
	case "array_type":
		return types.TypeArray
	}
	return types.TypeString
}

// isDate reports whether n is a reference to the Date type.
func (pf *ParsedFile) isDate(n *sitter.Node) bool {
	return n.Type() == "type_identifier" && n.Content(pf.Content) == "Date"
}
