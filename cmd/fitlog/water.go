package fitlog

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log and review water intake",
}

var (
	waterAmount   float64
	waterDate     string
	waterTime     string
	waterListDate string
)

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a drink",
	RunE: func(cmd *cobra.Command, args []string) error {
		occurredAt, err := parseDateTimeOrNow(waterDate, waterTime)
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			id, err := r.AddWater(model.WaterLog{
				OccurredAt: occurredAt,
				AmountMl:   waterAmount,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added water log %d\n", id)
			return nil
		})
	},
}

var waterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List water logs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			var (
				logs []model.WaterLog
				err  error
			)
			if waterListDate != "" {
				var day codec.Date
				if day, err = codec.DecodeDate(waterListDate); err != nil {
					return err
				}
				logs, err = r.WaterForDay(day)
			} else {
				logs, err = r.Water()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tAMOUNT_ML")
			for _, w := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.0f\n", w.ID, formatStamp(w.OccurredAt), w.AmountMl)
			}
			return nil
		})
	},
}

var waterTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's total intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			day := codec.DateOf(time.Now())
			total, err := r.WaterTotalForDay(day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f ml\n", day, total)
			return nil
		})
	},
}

var waterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a water log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("water log id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			n, err := r.DeleteWater(id)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Water log %d not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted water log %d\n", id)
			return nil
		})
	},
}

func init() {
	waterAddCmd.Flags().Float64Var(&waterAmount, "amount", 0, "Amount in milliliters")
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date (YYYY-MM-DD), default today")
	waterAddCmd.Flags().StringVar(&waterTime, "time", "", "Time (HH:MM)")
	_ = waterAddCmd.MarkFlagRequired("amount")

	waterListCmd.Flags().StringVar(&waterListDate, "date", "", "Limit to one day (YYYY-MM-DD)")

	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterListCmd)
	waterCmd.AddCommand(waterTodayCmd)
	waterCmd.AddCommand(waterDeleteCmd)
	rootCmd.AddCommand(waterCmd)
}
