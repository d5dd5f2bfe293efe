package fitlog

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and review meals",
}

var (
	mealType     string
	mealDesc     string
	mealCalories int
	mealProtein  float64
	mealDate     string
	mealTime     string
	mealListDate string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseMealType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(mealType), "-", "_")))
		if err != nil {
			return err
		}
		occurredAt, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			id, err := r.AddMeal(model.MealLog{
				OccurredAt:  occurredAt,
				Type:        typ,
				Description: mealDesc,
				Calories:    optionalInt(mealCalories),
				ProteinG:    optionalFloat(mealProtein),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %d\n", id)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals (all newest first, or one day's meals in eaten order)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			var (
				logs []model.MealLog
				err  error
			)
			if mealListDate != "" {
				var day codec.Date
				if day, err = codec.DecodeDate(mealListDate); err != nil {
					return err
				}
				logs, err = r.MealsForDay(day)
			} else {
				logs, err = r.Meals()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tDESCRIPTION\tKCAL\tPROTEIN_G")
			for _, m := range logs {
				kcal, protein := "", ""
				if m.Calories != nil {
					kcal = fmt.Sprintf("%d", *m.Calories)
				}
				if m.ProteinG != nil {
					protein = fmt.Sprintf("%.1f", *m.ProteinG)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\t%s\n",
					m.ID, formatStamp(m.OccurredAt), m.Type, m.Description, kcal, protein)
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			n, err := r.DeleteMeal(id)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Meal %d not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %d\n", id)
			return nil
		})
	},
}

func init() {
	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type (breakfast, lunch, dinner, snack, pre-workout)")
	mealAddCmd.Flags().StringVar(&mealDesc, "desc", "", "What was eaten")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "Protein in grams")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date (YYYY-MM-DD), default today")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time (HH:MM)")
	_ = mealAddCmd.MarkFlagRequired("type")
	_ = mealAddCmd.MarkFlagRequired("desc")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Limit to one day (YYYY-MM-DD), eaten order")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
