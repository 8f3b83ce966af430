// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ts2openapi/ts2openapi/internal/generator"
	"github.com/ts2openapi/ts2openapi/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches sources
	ExitCodeDifference = 1 // Document differs from sources
	ExitCodeCheckError = 2 // Error during analysis
)

// errDocumentDrift is returned by check when the document is stale.
var errDocumentDrift = errors.New("document differs from sources")

// exitFunc terminates the process in CI mode.
var exitFunc = os.Exit

var (
	checkStrict bool
	checkIgnore []string
	checkCI     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check that the output document matches the sources",
	Long: `Check validates that the configured output document matches the sources.

This command generates the document in memory and compares it with the
existing output file. It is useful in CI pipelines to ensure the committed
document is always in sync with the handlers.

Exit codes (with --ci):
  0  Document matches sources
  1  Document differs from sources
  2  Error during analysis

Example:
  ts2openapi check                      # Report differences
  ts2openapi check --ci                 # CI mode with exit codes
  ts2openapi check --ignore '/health'   # Ignore a path
  ts2openapi check --strict=false       # Report without failing`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "path or schema patterns to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	code, err := check(cmd, args)
	if checkCI {
		if err != nil && code != ExitCodeDifference {
			printError("%v", err)
		}
		exitFunc(code)
	}
	return err
}

// check compares the output file with a freshly generated document and
// returns the exit code matching the outcome.
func check(cmd *cobra.Command, args []string) (int, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return ExitCodeCheckError, err
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}

	if cfg.Output == "" {
		return ExitCodeCheckError, fmt.Errorf("no output file configured")
	}

	if _, err := os.Stat(cfg.Output); os.IsNotExist(err) {
		printError("Document not found: %s", cfg.Output)
		printInfo("Run 'ts2openapi generate' first to create the document")
		return ExitCodeDifference, fmt.Errorf("document not found: %s", cfg.Output)
	}

	existing, err := openapi.ReadFile(cfg.Output)
	if err != nil {
		return ExitCodeCheckError, fmt.Errorf("failed to read existing document: %w", err)
	}

	result, err := generator.New(cfg, newLogger()).Generate(cmd.Context())
	if err != nil {
		return ExitCodeCheckError, fmt.Errorf("failed to generate document: %w", err)
	}

	diffResult := applyIgnorePatterns(openapi.NewDiffer().Diff(existing, result.Document), checkIgnore)

	if diffResult.IsEmpty() {
		printInfo("Document is in sync with sources")
		return ExitCodeMatch, nil
	}

	printInfo("Document differs from sources:\n")
	printInfo(diffResult.Summary)
	printInfo("")

	if len(diffResult.PathChanges) > 0 {
		printInfo("Path changes:")
		for _, change := range diffResult.PathChanges {
			printInfo("  %s %s %s", getChangeSymbol(change.Type), change.Method, change.Path)
		}
		printInfo("")
	}

	if len(diffResult.SchemaChanges) > 0 {
		printInfo("Schema changes:")
		for _, change := range diffResult.SchemaChanges {
			printInfo("  %s %s", getChangeSymbol(change.Type), change.Name)
		}
		printInfo("")
	}

	if diffResult.HasBreakingChanges {
		printError("Breaking changes detected!")
	}

	printInfo("Run 'ts2openapi generate' to update the document")

	if checkStrict || checkCI {
		return ExitCodeDifference, errDocumentDrift
	}
	return ExitCodeMatch, nil
}

// applyIgnorePatterns filters out changes that match ignore patterns.
func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) *openapi.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &openapi.DiffResult{
		PathChanges:   make([]openapi.PathChange, 0),
		SchemaChanges: make([]openapi.SchemaChange, 0),
	}

	for _, change := range result.PathChanges {
		if !matchesAnyPattern(change.Path, patterns) {
			filtered.PathChanges = append(filtered.PathChanges, change)
		}
	}

	for _, change := range result.SchemaChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.SchemaChanges = append(filtered.SchemaChanges, change)
		}
	}

	for _, change := range filtered.PathChanges {
		if change.Type == openapi.DiffTypeRemoved {
			filtered.HasBreakingChanges = true
			break
		}
	}
	if !filtered.HasBreakingChanges {
		for _, change := range filtered.SchemaChanges {
			if change.Type == openapi.DiffTypeRemoved {
				filtered.HasBreakingChanges = true
				break
			}
		}
	}

	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// matchesAnyPattern checks if a string matches any of the given patterns.
// A leading or trailing * matches any suffix or prefix, including slashes.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		switch {
		case strings.HasPrefix(pattern, "*") && !strings.HasPrefix(pattern, "**"):
			if strings.HasSuffix(s, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, "*") && !strings.HasSuffix(pattern, "**"):
			if strings.HasPrefix(s, pattern[:len(pattern)-1]) {
				return true
			}
		case strings.Contains(pattern, "*"):
			if matched, _ := doublestar.Match(pattern, s); matched {
				return true
			}
		default:
			if s == pattern {
				return true
			}
		}
	}
	return false
}

// generateFilteredSummary generates a summary for filtered results.
func generateFilteredSummary(result *openapi.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}

	count := func(t openapi.DiffType, paths bool) int {
		n := 0
		if paths {
			for _, c := range result.PathChanges {
				if c.Type == t {
					n++
				}
			}
			return n
		}
		for _, c := range result.SchemaChanges {
			if c.Type == t {
				n++
			}
		}
		return n
	}

	var parts []string
	for _, kind := range []struct {
		label string
		paths bool
	}{{"path", true}, {"schema", false}} {
		for _, t := range []openapi.DiffType{openapi.DiffTypeAdded, openapi.DiffTypeRemoved, openapi.DiffTypeModified} {
			if n := count(t, kind.paths); n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s(s) %s", n, kind.label, t))
			}
		}
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}

	return summary
}

// getChangeSymbol returns a symbol for the change type.
func getChangeSymbol(t openapi.DiffType) string {
	switch t {
	case openapi.DiffTypeAdded:
		return "+"
	case openapi.DiffTypeRemoved:
		return "-"
	case openapi.DiffTypeModified:
		return "~"
	default:
		return " "
	}
}
