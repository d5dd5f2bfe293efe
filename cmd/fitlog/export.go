package fitlog

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/export"
	"github.com/fitlog/fitlog-cli/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a consistent JSON snapshot of all data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			if exportOut == "" {
				return export.Write(st, cmd.OutOrStdout())
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := export.Write(st, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
