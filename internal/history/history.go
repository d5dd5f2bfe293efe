// Package history merges the four log tables into one chronologically
// ordered, live-updating feed and routes deletions back to the table a
// record came from. It holds no storage of its own.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

// Kind tags an Item with the table it came from.
type Kind int

const (
	KindWeight Kind = iota
	KindWorkout
	KindMeal
	KindWater
)

func (k Kind) String() string {
	switch k {
	case KindWeight:
		return "weight"
	case KindWorkout:
		return "workout"
	case KindMeal:
		return "meal"
	case KindWater:
		return "water"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Item is one entry of the merged feed: exactly one of the record
// pointers is set, matching Kind.
type Item struct {
	Kind    Kind
	Weight  *model.WeightEntry
	Workout *model.WorkoutLog
	Meal    *model.MealLog
	Water   *model.WaterLog
}

// OccurredAt is the item's sort key in the merged feed.
func (it Item) OccurredAt() time.Time {
	switch it.Kind {
	case KindWeight:
		return it.Weight.OccurredAt
	case KindWorkout:
		return it.Workout.OccurredAt
	case KindMeal:
		return it.Meal.OccurredAt
	case KindWater:
		return it.Water.OccurredAt
	}
	return time.Time{}
}

// ID returns the wrapped record's id within its own table.
func (it Item) ID() int64 {
	switch it.Kind {
	case KindWeight:
		return it.Weight.ID
	case KindWorkout:
		return it.Workout.ID
	case KindMeal:
		return it.Meal.ID
	case KindWater:
		return it.Water.ID
	}
	return 0
}

// Feed is the aggregator. Each Watch call fans in the four table
// subscriptions independently.
type Feed struct {
	repo *repo.Repo
	log  zerolog.Logger
}

func New(r *repo.Repo, log zerolog.Logger) *Feed {
	return &Feed{repo: r, log: log.With().Str("component", "history").Logger()}
}

// Watch subscribes to the four log tables and emits the merged feed:
// every upstream tick yields one emission containing all four latest
// snapshots concatenated (weight, workout, meal, water) and stably
// sorted newest-first, so equal timestamps keep that per-kind order.
//
// The first emission waits until each table has reported once; an empty
// table reports an empty snapshot immediately, so this never blocks. If
// any upstream subscription fails, the whole merged subscription fails;
// silently dropping a category would corrupt the feed.
func (f *Feed) Watch(ctx context.Context) *live.Subscription[[]Item] {
	weights := f.repo.WatchWeights(ctx)
	workouts := f.repo.WatchWorkouts(ctx)
	meals := f.repo.WatchMeals(ctx)
	water := f.repo.WatchWater(ctx)

	cancelUpstreams := func() {
		weights.Cancel()
		workouts.Cancel()
		meals.Cancel()
		water.Cancel()
	}

	upstreamErr := func() error {
		for _, err := range []error{weights.Err(), workouts.Err(), meals.Err(), water.Err()} {
			if err != nil {
				return err
			}
		}
		return nil
	}

	// Every upstream queues its initial snapshot at subscribe time, so
	// these reads complete promptly even over empty tables.
	var latest snapshots
	var ok bool
	if latest.weights, ok = <-weights.Updates(); !ok {
		cancelUpstreams()
		return live.Failed[[]Item](upstreamErr())
	}
	if latest.workouts, ok = <-workouts.Updates(); !ok {
		cancelUpstreams()
		return live.Failed[[]Item](upstreamErr())
	}
	if latest.meals, ok = <-meals.Updates(); !ok {
		cancelUpstreams()
		return live.Failed[[]Item](upstreamErr())
	}
	if latest.water, ok = <-water.Updates(); !ok {
		cancelUpstreams()
		return live.Failed[[]Item](upstreamErr())
	}

	feed := live.NewFeed[[]Item]("history", f.log)
	sub := feed.Subscribe(ctx, merge(latest))

	go func() {
		defer cancelUpstreams()
		for {
			var ok bool
			select {
			case latest.weights, ok = <-weights.Updates():
			case latest.workouts, ok = <-workouts.Updates():
			case latest.meals, ok = <-meals.Updates():
			case latest.water, ok = <-water.Updates():
			case <-sub.Done():
				feed.Close()
				return
			}
			if !ok {
				feed.Fail(upstreamErr())
				return
			}
			feed.Publish(merge(latest))
		}
	}()
	return sub
}

// Delete routes the item to its originating table. The aggregator stores
// nothing itself, so this is equivalent to deleting through that table.
func (f *Feed) Delete(item Item) (int64, error) {
	switch item.Kind {
	case KindWeight:
		return f.repo.DeleteWeight(item.Weight.ID)
	case KindWorkout:
		return f.repo.DeleteWorkout(item.Workout.ID)
	case KindMeal:
		return f.repo.DeleteMeal(item.Meal.ID)
	case KindWater:
		return f.repo.DeleteWater(item.Water.ID)
	}
	return 0, fmt.Errorf("unknown history item kind %d", int(item.Kind))
}

type snapshots struct {
	weights  []model.WeightEntry
	workouts []model.WorkoutLog
	meals    []model.MealLog
	water    []model.WaterLog
}

func merge(s snapshots) []Item {
	items := make([]Item, 0, len(s.weights)+len(s.workouts)+len(s.meals)+len(s.water))
	for i := range s.weights {
		items = append(items, Item{Kind: KindWeight, Weight: &s.weights[i]})
	}
	for i := range s.workouts {
		items = append(items, Item{Kind: KindWorkout, Workout: &s.workouts[i]})
	}
	for i := range s.meals {
		items = append(items, Item{Kind: KindMeal, Meal: &s.meals[i]})
	}
	for i := range s.water {
		items = append(items, Item{Kind: KindWater, Water: &s.water[i]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt().After(items[j].OccurredAt())
	})
	return items
}
