// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package main is the entry point for the ts2openapi CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ts2openapi/ts2openapi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
