// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser provides TypeScript parsing and tree helpers built on tree-sitter.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/ts2openapi/ts2openapi/internal/scanner"
)

// TypeScriptParser provides TypeScript AST parsing capabilities using tree-sitter.
type TypeScriptParser struct {
	parser *sitter.Parser
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *TypeScriptParser {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return &TypeScriptParser{
		parser: parser,
	}
}

// ParsedFile is one parsed source unit.
type ParsedFile struct {
	// Path names the unit (the single file, or the first file of a concatenation)
	Path string

	// Content is the parsed source
	Content []byte

	// Tree is the tree-sitter parse tree
	Tree *sitter.Tree

	// RootNode is the root node of the AST
	RootNode *sitter.Node

	source *scanner.Source
}

// ParseError reports source that tree-sitter could not parse cleanly.
type ParseError struct {
	File   string
	Line   int
	Column int
	Text   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %s:%d:%d near %q", e.File, e.Line, e.Column, e.Text)
}

// Parse parses TypeScript source code from bytes. A .tsx or .jsx filename
// selects the TSX grammar.
func (p *TypeScriptParser) Parse(ctx context.Context, filename string, content []byte) (*ParsedFile, error) {
	return p.parse(ctx, filename, content, nil, languageFor(filename))
}

// ParseSource parses a concatenated source unit as one module. Node
// locations, including those in syntax errors, are mapped back to the
// originating files.
func (p *TypeScriptParser) ParseSource(ctx context.Context, src *scanner.Source) (*ParsedFile, error) {
	name := ""
	if len(src.Files) > 0 {
		name = src.Files[0].Path
	}

	paths := make([]string, 0, len(src.Files))
	for _, f := range src.Files {
		paths = append(paths, f.Path)
	}
	return p.parse(ctx, name, src.Content, src, languageFor(paths...))
}

// languageFor returns the TSX grammar when any path is a .tsx or .jsx
// file, and the TypeScript grammar otherwise. A concatenated unit is one
// tree, so a single JSX file switches the whole unit.
func languageFor(paths ...string) *sitter.Language {
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".tsx", ".jsx":
			return tsx.GetLanguage()
		}
	}
	return typescript.GetLanguage()
}

func (p *TypeScriptParser) parse(ctx context.Context, filename string, content []byte, src *scanner.Source, lang *sitter.Language) (*ParsedFile, error) {
	p.parser.SetLanguage(lang)

	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TypeScript: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		tree.Close()
		return nil, fmt.Errorf("failed to get root node")
	}

	pf := &ParsedFile{
		Path:     filename,
		Content:  content,
		Tree:     tree,
		RootNode: rootNode,
		source:   src,
	}

	if rootNode.HasError() {
		perr := pf.syntaxError()
		pf.Close()
		return nil, perr
	}

	return pf, nil
}

// syntaxError builds a ParseError for the first ERROR or missing node.
func (pf *ParsedFile) syntaxError() *ParseError {
	var bad *sitter.Node
	Walk(pf.RootNode, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			bad = n
			return false
		}
		return true
	})
	if bad == nil {
		bad = pf.RootNode
	}

	file, line := pf.Locate(bad)
	text := bad.Content(pf.Content)
	if len(text) > 40 {
		text = text[:40]
	}
	return &ParseError{
		File:   file,
		Line:   line,
		Column: int(bad.StartPoint().Column) + 1,
		Text:   text,
	}
}

// Locate returns the originating file and 1-based line of a node.
func (pf *ParsedFile) Locate(n *sitter.Node) (string, int) {
	if pf.source != nil {
		if file, line := pf.source.Locate(int(n.StartByte())); file != "" {
			return file, line
		}
	}
	return pf.Path, int(n.StartPoint().Row) + 1
}

// Close cleans up parser resources.
func (p *TypeScriptParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Close cleans up the parsed file resources.
func (pf *ParsedFile) Close() {
	if pf.Tree != nil {
		pf.Tree.Close()
	}
}

// Walk walks all nodes in document order, calling fn for each node.
// If fn returns false, it stops recursing into that node's children.
func Walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !fn(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), fn)
	}
}

// GetCallArguments returns the arguments from a call_expression.
func GetCallArguments(node *sitter.Node) []*sitter.Node {
	var args []*sitter.Node

	if node.Type() != "call_expression" {
		return args
	}

	argNode := node.ChildByFieldName("arguments")
	if argNode == nil {
		return args
	}

	// Named children skip punctuation
	for i := 0; i < int(argNode.NamedChildCount()); i++ {
		child := argNode.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		args = append(args, child)
	}

	return args
}

// ExtractStringLiteral extracts the value of a string literal, or of a
// template literal without substitutions.
func ExtractStringLiteral(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "string":
	case "template_string":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if node.NamedChild(i).Type() == "template_substitution" {
				return "", false
			}
		}
	default:
		return "", false
	}

	text := node.Content(content)
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return text[1 : len(text)-1], true
		}
	}

	return text, true
}

// GetMemberExpressionParts returns the object and property of a member_expression.
func GetMemberExpressionParts(node *sitter.Node, content []byte) (object, property string) {
	if node.Type() != "member_expression" {
		return "", ""
	}

	if objNode := node.ChildByFieldName("object"); objNode != nil {
		object = objNode.Content(content)
	}
	if propNode := node.ChildByFieldName("property"); propNode != nil {
		property = propNode.Content(content)
	}

	return object, property
}

// LeadingComments returns the comment nodes inside a block or body that
// precede its first member. When the block has no members every comment
// in it is returned.
func LeadingComments(block *sitter.Node) []*sitter.Node {
	var comments []*sitter.Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() != "comment" {
			break
		}
		comments = append(comments, child)
	}
	return comments
}

// FirstMember returns the first non-comment named child of a block, or nil.
func FirstMember(block *sitter.Node) *sitter.Node {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}

// CommentLines strips comment delimiters from a line or block comment and
// returns its lines, trimmed, with leading '*' decorations removed.
func CommentLines(raw string) []string {
	text := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(text, "//"):
		text = strings.TrimPrefix(text, "//")
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *TypeScriptParser) SupportedExtensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}
}
