package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Commit are injected at build time via -ldflags; plain
// "go build" keeps the defaults.
var (
	Version = "1.0.0-dev"
	Commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("vpress %s (%s)\n", Version, Commit)
	},
}
