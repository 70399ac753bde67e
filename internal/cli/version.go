package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo stores build metadata injected via ldflags.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("netdash %s (commit %s, built %s)\n", version, commit, date)
	},
}
