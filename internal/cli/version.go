// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X github.com/ts2openapi/ts2openapi/internal/cli.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the ts2openapi version with its commit, build date and Go toolchain.

The same one-line summary printed by --short is available as
"ts2openapi --version".`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			cmd.Println(GetVersionInfo())
			return
		}
		cmd.Printf("ts2openapi %s\n", Version)
		cmd.Printf("  Commit:     %s\n", Commit)
		cmd.Printf("  Build Date: %s\n", BuildDate)
		cmd.Printf("  Go Version: %s\n", runtime.Version())
		cmd.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print a single summary line")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(GetVersionInfo() + "\n")
}

// GetVersionInfo returns the one-line version summary.
func GetVersionInfo() string {
	return fmt.Sprintf("ts2openapi %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
