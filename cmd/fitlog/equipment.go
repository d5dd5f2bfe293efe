package fitlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "Track which equipment is available",
}

var equipmentAvailable bool

var equipmentSetCmd = &cobra.Command{
	Use:   "set <equipment-id>",
	Short: "Set an equipment flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			if err := r.SetEquipment(model.EquipmentFlag{
				EquipmentID: args[0],
				IsAvailable: equipmentAvailable,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Equipment %q available=%t\n", args[0], equipmentAvailable)
			return nil
		})
	},
}

var equipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List equipment flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			flags, err := r.Equipment()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "EQUIPMENT\tAVAILABLE")
			for _, f := range flags {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", f.EquipmentID, f.IsAvailable)
			}
			return nil
		})
	},
}

var equipmentDeleteCmd = &cobra.Command{
	Use:   "delete <equipment-id>",
	Short: "Remove an equipment flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			n, err := r.DeleteEquipment(args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Equipment %q not found\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed equipment %q\n", args[0])
			return nil
		})
	},
}

func init() {
	equipmentSetCmd.Flags().BoolVar(&equipmentAvailable, "available", true, "Whether the equipment is available")

	equipmentCmd.AddCommand(equipmentSetCmd)
	equipmentCmd.AddCommand(equipmentListCmd)
	equipmentCmd.AddCommand(equipmentDeleteCmd)
	rootCmd.AddCommand(equipmentCmd)
}
