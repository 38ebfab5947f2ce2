package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version variables set at build time (e.g., with -ldflags).
var (
	Version = "0.0.0"
	commit  = "none"
	date    = "unknown"
)

const repoUrl = "https://github.com/miniconomy2025/ca"

func init() {
	// Add "check" subcommand under "version"
	VersionCmd.AddCommand(checkCmd)
}

// VersionCmd defines the version command.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Printf("version: %s\n", Version)
		fmt.Printf(" commit: %s\n", commit)
		fmt.Printf("   date: %s\n", date)
		fmt.Printf(" source: %s\n", repoUrl)
		return nil
	},
}
