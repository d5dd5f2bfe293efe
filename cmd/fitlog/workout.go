package fitlog

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Log and review workouts",
}

var (
	workoutType      string
	workoutCompleted bool
	workoutDuration  int
	workoutCalories  int
	workoutDate      string
	workoutTime      string
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseWorkoutType(strings.ToUpper(strings.TrimSpace(workoutType)))
		if err != nil {
			return err
		}
		occurredAt, err := parseDateTimeOrNow(workoutDate, workoutTime)
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			id, err := r.AddWorkout(model.WorkoutLog{
				OccurredAt:     occurredAt,
				Type:           typ,
				Completed:      workoutCompleted,
				DurationMin:    optionalInt(workoutDuration),
				CaloriesBurned: optionalInt(workoutCalories),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %d\n", id)
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			logs, err := r.Workouts()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tDONE\tMIN\tKCAL")
			for _, w := range logs {
				dur, kcal := "", ""
				if w.DurationMin != nil {
					dur = fmt.Sprintf("%d", *w.DurationMin)
				}
				if w.CaloriesBurned != nil {
					kcal = fmt.Sprintf("%d", *w.CaloriesBurned)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%t\t%s\t%s\n",
					w.ID, formatStamp(w.OccurredAt), w.Type, w.Completed, dur, kcal)
			}
			return nil
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("workout id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			n, err := r.DeleteWorkout(id)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Workout %d not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %d\n", id)
			return nil
		})
	},
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutType, "type", "", "Workout type (walk, bike, home, mixed, other)")
	workoutAddCmd.Flags().BoolVar(&workoutCompleted, "completed", true, "Mark the workout completed")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "Duration in minutes")
	workoutAddCmd.Flags().IntVar(&workoutCalories, "calories", 0, "Calories burned")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "Date (YYYY-MM-DD), default today")
	workoutAddCmd.Flags().StringVar(&workoutTime, "time", "", "Time (HH:MM)")
	_ = workoutAddCmd.MarkFlagRequired("type")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
