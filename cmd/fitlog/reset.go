package fitlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/repo"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data and return to the pre-onboarding state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("reset destroys all data; re-run with --force to confirm")
		}
		return withRepo(func(r *repo.Repo) error {
			if err := r.ResetData(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data erased")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Confirm the wipe")
	rootCmd.AddCommand(resetCmd)
}
