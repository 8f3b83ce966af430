// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ts2openapi/ts2openapi/internal/generator"
	"github.com/ts2openapi/ts2openapi/internal/openapi"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

var diffFailOnBreaking bool

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents and show the differences.

If only one file is provided, it is compared against the document
generated from the configured sources.

If no files are provided, the configured output file is compared against
what would be generated from the current sources.

Example:
  ts2openapi diff                           # Compare output vs generated
  ts2openapi diff openapi.json              # Compare file vs generated
  ts2openapi diff old.json new.yaml         # Compare two files
  ts2openapi diff --fail-on-breaking        # Exit non-zero on removals`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffFailOnBreaking, "fail-on-breaking", false, "return an error when breaking changes are found")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var (
		base, head *types.OpenAPI
		err        error
	)

	switch len(args) {
	case 0:
		printVerbose("Comparing configured output against generated...")
		base, head, err = compareWithGenerated(cmd.Context(), "")
	case 1:
		printVerbose("Comparing %s against generated...", args[0])
		base, head, err = compareWithGenerated(cmd.Context(), args[0])
	case 2:
		printVerbose("Comparing %s against %s...", args[0], args[1])
		base, err = readSpec(args[0])
		if err == nil {
			head, err = readSpec(args[1])
		}
	default:
		return fmt.Errorf("too many arguments: expected at most 2 files")
	}
	if err != nil {
		return err
	}

	result := openapi.NewDiffer().Diff(base, head)
	fmt.Fprintln(stdout, openapi.FormatDiff(result))

	if diffFailOnBreaking && result.HasBreakingChanges {
		return fmt.Errorf("breaking changes detected")
	}
	return nil
}

// compareWithGenerated reads file (the configured output when empty) and
// generates the current document.
func compareWithGenerated(ctx context.Context, file string) (*types.OpenAPI, *types.OpenAPI, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, nil, err
	}

	if file == "" {
		file = cfg.Output
	}
	if file == "" {
		return nil, nil, fmt.Errorf("no output file configured: pass a file to compare")
	}

	base, err := readSpec(file)
	if err != nil {
		return nil, nil, err
	}

	result, err := generator.New(cfg, newLogger()).Generate(ctx)
	if err != nil {
		return nil, nil, err
	}
	return base, result.Document, nil
}

func readSpec(path string) (*types.OpenAPI, error) {
	doc, err := openapi.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	return doc, nil
}
