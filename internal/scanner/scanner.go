// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// ExcludePatterns are glob patterns for files to skip when walking a
	// directory or expanding a glob (e.g., "node_modules/**")
	ExcludePatterns []string
}

// Scanner resolves configured paths into source files.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	return &Scanner{
		config: config,
	}
}

// FileReadError is returned when a resolved source file cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Resolve expands a path list into an ordered list of files.
// A regular file is kept as written, a directory is walked for supported
// source files, and a glob pattern is expanded in lexical order. Each file
// appears once, at its first position.
func (s *Scanner) Resolve(pathList []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		key := filepath.Clean(path)
		if !seen[key] {
			seen[key] = true
			files = append(files, path)
		}
	}

	for _, entry := range pathList {
		if isGlob(entry) {
			matches, err := doublestar.FilepathGlob(entry, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %s: %w", entry, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if IsSupportedFile(m) && !s.excluded(filepath.ToSlash(m)) {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path %s: %w", entry, err)
		}

		if !info.IsDir() {
			add(entry)
			continue
		}

		dirFiles, err := s.walkDir(entry)
		if err != nil {
			return nil, err
		}
		for _, f := range dirFiles {
			add(f)
		}
	}

	return files, nil
}

// walkDir returns the supported files below dir in lexical order.
func (s *Scanner) walkDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(dir, filePath)
		if relErr != nil {
			relPath = filepath.Base(filePath)
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if s.ExcludesDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSupportedFile(filePath) && !s.excluded(relPath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}

	return files, nil
}

// ExcludesDir reports whether a directory, given as a slash-separated path
// relative to the walked root, is skipped entirely by the exclude patterns.
func (s *Scanner) ExcludesDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		// "node_modules" matches "node_modules/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")
		if relPath == dirPattern {
			return true
		}

		if matched, _ := doublestar.Match(pattern, relPath+"/dummy.ts"); matched && strings.HasSuffix(pattern, "/**") {
			return true
		}
	}

	return false
}

// excluded checks if a slash-separated path matches any exclude pattern.
func (s *Scanner) excluded(path string) bool {
	for _, pattern := range s.config.ExcludePatterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Load reads every file in order and concatenates the contents with no
// separator into one Source. The first unreadable file aborts the load.
func (s *Scanner) Load(paths []string) (*Source, error) {
	src := &Source{}
	var buf bytes.Buffer

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, &FileReadError{Path: path, Err: err}
		}

		sf := SourceFile{
			Path:     path,
			Language: DetectLanguage(path),
			Content:  content,
		}
		if info, err := os.Stat(path); err == nil {
			sf.ModTime = info.ModTime()
		}

		src.segments = append(src.segments, segment{start: buf.Len(), end: buf.Len() + len(content)})
		src.Files = append(src.Files, sf)
		buf.Write(content)
	}

	src.Content = buf.Bytes()
	return src, nil
}

// LoadPaths resolves the path list and loads the result.
func (s *Scanner) LoadPaths(pathList []string) (*Source, error) {
	files, err := s.Resolve(pathList)
	if err != nil {
		return nil, err
	}
	return s.Load(files)
}

// Source is the concatenation of every scanned file.
type Source struct {
	// Files are the loaded files in concatenation order
	Files []SourceFile

	// Content is the concatenated content
	Content []byte

	segments []segment
}

type segment struct {
	start, end int
}

// Locate maps a byte offset in Content back to the file it came from and
// the 1-based line within that file. It returns "" and 0 when the offset
// is out of range.
func (s *Source) Locate(offset int) (string, int) {
	i := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].end > offset
	})
	if i >= len(s.segments) || offset < s.segments[i].start {
		return "", 0
	}

	content := s.Files[i].Content
	rel := offset - s.segments[i].start
	return s.Files[i].Path, bytes.Count(content[:rel], []byte("\n")) + 1
}

// isGlob reports whether path contains glob metacharacters.
func isGlob(path string) bool {
	return strings.ContainsAny(filepath.ToSlash(path), "*?[{")
}
