package fitlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local fitlog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized fitlog database at %s\n", st.Path())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
