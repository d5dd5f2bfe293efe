package fitlog

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/history"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the merged activity feed, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			feed := history.New(r, logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub := feed.Watch(ctx)
			defer sub.Cancel()

			first := true
			for items := range sub.Updates() {
				if !first {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 40))
				}
				printHistory(cmd.OutOrStdout(), items, historyLimit)
				first = false
				if !historyFollow {
					break
				}
			}
			return sub.Err()
		})
	},
}

var (
	historyLimit  int
	historyFollow bool
)

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete an item through the feed (kind: weight, workout, meal, water)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("item id", args[1])
		if err != nil {
			return err
		}
		return withRepo(func(r *repo.Repo) error {
			feed := history.New(r, logger)
			item, err := findHistoryItem(feed, args[0], id)
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s item %d in the feed\n", args[0], id)
				return nil
			}
			n, err := feed.Delete(*item)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s item %d in the feed\n", args[0], id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s item %d\n", args[0], id)
			return nil
		})
	},
}

func findHistoryItem(feed *history.Feed, kind string, id int64) (*history.Item, error) {
	sub := feed.Watch(nil)
	defer sub.Cancel()
	items, ok := <-sub.Updates()
	if !ok {
		return nil, sub.Err()
	}
	for _, it := range items {
		if it.Kind.String() == kind && it.ID() == id {
			return &it, nil
		}
	}
	return nil, nil
}

func printHistory(w io.Writer, items []history.Item, limit int) {
	fmt.Fprintln(w, "KIND\tID\tDATE\tDETAIL")
	for i, it := range items {
		if limit > 0 && i >= limit {
			break
		}
		var detail string
		switch it.Kind {
		case history.KindWeight:
			detail = fmt.Sprintf("%.1f kg", it.Weight.WeightKg)
		case history.KindWorkout:
			detail = it.Workout.Type.String()
		case history.KindMeal:
			detail = fmt.Sprintf("%s %s", it.Meal.Type, it.Meal.Description)
		case history.KindWater:
			detail = fmt.Sprintf("%.0f ml", it.Water.AmountMl)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", it.Kind, it.ID(), formatStamp(it.OccurredAt()), detail)
	}
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum items to print per emission")
	historyCmd.Flags().BoolVar(&historyFollow, "follow", false, "Keep printing as records change (Ctrl-C to stop)")

	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
