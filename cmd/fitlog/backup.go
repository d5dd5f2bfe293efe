package fitlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/backup"
	"github.com/fitlog/fitlog-cli/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up and restore the database file",
}

var backupOut string

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database to a backup file with a checksum",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			out := backupOut
			if out == "" {
				out = filepath.Join(filepath.Dir(st.Path()),
					fmt.Sprintf("fitlog-%s.db", time.Now().Format("20060102-150405")))
			}
			info, err := backup.Create(st, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes, sha256 %s)\n",
				info.Path, info.SizeBytes, info.Checksum[:12])
			return nil
		})
	},
}

var backupRestoreForce bool

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Replace the database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := backup.Restore(args[0], path, backupRestoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", path, args[0])
		return nil
	},
}

func init() {
	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup file path")
	backupRestoreCmd.Flags().BoolVar(&backupRestoreForce, "force", false, "Overwrite an existing database")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
