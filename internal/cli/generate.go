// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ts2openapi/ts2openapi/internal/generator"
)

var (
	generateDryRun  bool
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate the OpenAPI document from source code",
	Long: `Generate an OpenAPI document by scanning the configured TypeScript sources.

Files in pathList are read in order and parsed as one unit. Marked
interfaces become component schemas and annotated Express handlers become
operations. The document is written to the configured output file, or
printed to stdout when none is set.

Example:
  ts2openapi generate                         # Use ts2openapi.json
  ts2openapi generate src/models.ts src/app.ts
  ts2openapi generate -o openapi.yaml -f yaml
  ts2openapi generate --dry-run               # Report without writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "report what would be generated without writing")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude when walking directories")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if len(generateExclude) > 0 {
		cfg.Exclude = generateExclude
	}

	gen := generator.New(cfg, newLogger())

	if generateDryRun || cfg.Output == "" {
		result, err := gen.Generate(cmd.Context())
		if err != nil {
			return err
		}
		if generateDryRun {
			printInfo("Dry run mode - no files will be written")
			printSummary(result)
			return nil
		}
		fmt.Fprint(stdout, result.Output)
		return nil
	}

	result, err := gen.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(result)
	if result.Written {
		printInfo("Wrote %s", cfg.Output)
	}
	return nil
}

func printSummary(result *generator.Result) {
	printInfo("Scanned %d file(s): %d route(s), %d schema(s)",
		len(result.Files), len(result.Routes), len(result.Schemas))

	for _, route := range result.Routes {
		printVerbose("  %s %s -> %s (%s:%d)", route.Method, route.Path, route.SchemaName, route.SourceFile, route.SourceLine)
	}
	for _, schema := range result.Schemas {
		printVerbose("  schema %s (%d properties)", schema.Name, len(schema.Variables))
	}
}
