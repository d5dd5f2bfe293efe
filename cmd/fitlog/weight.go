package fitlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log and review weight entries",
}

var (
	weightValue float64
	weightDate  string
	weightTime  string
	weightNote  string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a weight entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		occurredAt, err := parseDateTimeOrNow(weightDate, weightTime)
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			id, err := r.AddWeight(model.WeightEntry{
				WeightKg:   weightValue,
				OccurredAt: occurredAt,
				Note:       optionalString(weightNote),
			})
			if err != nil {
				return err
			}
			// Logging a weight also moves the profile's current weight.
			if _, err := r.UpdateCurrentWeight(weightValue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added weight entry %d\n", id)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			entries, err := r.Weights()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT_KG\tNOTE")
			for _, e := range entries {
				note := ""
				if e.Note != nil {
					note = *e.Note
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.1f\t%s\n", e.ID, formatStamp(e.OccurredAt), e.WeightKg, note)
			}
			return nil
		})
	},
}

var weightLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recent weight entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			e, err := r.LastWeight()
			if err != nil {
				return err
			}
			if e == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight entries yet")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f kg at %s\n", e.WeightKg, formatStamp(e.OccurredAt))
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight entry id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			n, err := r.DeleteWeight(id)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Weight entry %d not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %d\n", id)
			return nil
		})
	},
}

func init() {
	weightAddCmd.Flags().Float64Var(&weightValue, "weight", 0, "Weight in kg")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date (YYYY-MM-DD), default today")
	weightAddCmd.Flags().StringVar(&weightTime, "time", "", "Time (HH:MM)")
	weightAddCmd.Flags().StringVar(&weightNote, "note", "", "Optional note")
	_ = weightAddCmd.MarkFlagRequired("weight")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	weightCmd.AddCommand(weightLastCmd)
	weightCmd.AddCommand(weightDeleteCmd)
	rootCmd.AddCommand(weightCmd)
}
