// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ts2openapi/ts2openapi/internal/generator"
	"github.com/ts2openapi/ts2openapi/internal/openapi"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI document to stdout",
	Long: `Print the OpenAPI document to standard output.

If a file is provided, it is read and printed in the requested format.
Otherwise the document is generated from the configured sources and
printed without touching the output file.

Example:
  ts2openapi print                      # Generate and print
  ts2openapi print openapi.json -f yaml # Convert an existing document
  ts2openapi print | jq '.paths'        # Pipe to jq for processing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		doc, err := openapi.ReadFile(args[0])
		if err != nil {
			return err
		}

		outputFormat := format
		if outputFormat == "" {
			outputFormat = openapi.FormatFromPath(args[0])
		}

		printVerbose("Printing %s as %s", args[0], outputFormat)
		out, err := openapi.NewWriter().Marshal(doc, outputFormat)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, out)
		return nil
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	result, err := generator.New(cfg, newLogger()).Generate(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, result.Output)
	return nil
}
