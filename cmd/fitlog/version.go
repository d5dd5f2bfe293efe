package fitlog

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Overridden at release time via -ldflags. When left at their defaults
// the values are recovered from the embedded build info instead.
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		v, c := buildIdentity()
		fmt.Fprintf(cmd.OutOrStdout(), "fitlog %s (%s)\n", v, c)
	},
}

// buildIdentity prefers the ldflags values, falling back to the module
// version and VCS revision the Go toolchain records in the binary.
func buildIdentity() (string, string) {
	v, c := version, commit
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v, c
	}
	if v == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v = bi.Main.Version
	}
	if c == "none" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				c = shortRevision(s.Value)
				break
			}
		}
	}
	return v, c
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
