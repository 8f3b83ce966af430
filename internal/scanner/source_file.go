// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner resolves configured source paths and loads them into a
// single concatenated source unit.
package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// SourceFile represents a loaded source file.
type SourceFile struct {
	// Path is the path as resolved from the configuration
	Path string

	// Language is the detected language ("typescript", "javascript")
	Language string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// languageExtensions maps file extensions to language identifiers.
var languageExtensions = map[string]string{
	".ts":  "typescript",
	".tsx": "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
}

// DetectLanguage detects the language from a file path.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageExtensions[ext]; ok {
		return lang
	}
	return ""
}

// IsSupportedFile checks if a file path has a supported extension.
// Declaration files (.d.ts) carry no handlers and are skipped.
func IsSupportedFile(path string) bool {
	if strings.HasSuffix(strings.ToLower(path), ".d.ts") {
		return false
	}
	return DetectLanguage(path) != ""
}
