// Package repo is the single entry point the rest of the program writes
// through. It hides table wiring, fills in defaults (occurred-at defaults
// to now, water logs derive their day), and enforces the singleton
// profile key. It holds no durable state of its own, so it can be
// re-created freely over the same store.
package repo

import (
	"context"
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/store"
)

type Repo struct {
	store *store.Store
}

func New(st *store.Store) *Repo {
	return &Repo{store: st}
}

// Store exposes the underlying record store to collaborators that need
// its exclusivity primitives (backup).
func (r *Repo) Store() *store.Store { return r.store }

func defaultNow(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return codec.Truncate(t)
}

// --- profile ---

func (r *Repo) Profile() (*model.Profile, error) {
	return r.store.Profile()
}

func (r *Repo) WatchProfile(ctx context.Context) *live.Subscription[*model.Profile] {
	return r.store.WatchProfile(ctx)
}

// UpsertProfile writes the singleton profile, defaulting CreatedAt to now.
func (r *Repo) UpsertProfile(p model.Profile) (int64, error) {
	p.ID = model.ProfileID
	p.CreatedAt = defaultNow(p.CreatedAt)
	return r.store.UpsertProfile(p)
}

// UpdateCurrentWeight is a partial-update convenience. Returns 0 when no
// profile exists yet; that is a documented edge case, not an error.
func (r *Repo) UpdateCurrentWeight(weightKg float64) (int64, error) {
	return r.store.UpdateProfileCurrentWeight(weightKg)
}

// CompleteOnboarding writes the profile and the user's first weight entry.
// The two writes land on independent tables; they become visible
// eventually-both, not jointly atomically.
func (r *Repo) CompleteOnboarding(p model.Profile) (int64, error) {
	p.CreatedAt = defaultNow(p.CreatedAt)
	id, err := r.UpsertProfile(p)
	if err != nil {
		return 0, err
	}
	_, err = r.AddWeight(model.WeightEntry{
		WeightKg:   p.StartWeightKg,
		OccurredAt: p.CreatedAt,
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// --- weight entries ---

func (r *Repo) AddWeight(e model.WeightEntry) (int64, error) {
	e.OccurredAt = defaultNow(e.OccurredAt)
	return r.store.InsertWeight(e)
}

func (r *Repo) UpdateWeight(e model.WeightEntry) (int64, error) {
	e.OccurredAt = defaultNow(e.OccurredAt)
	return r.store.UpdateWeight(e)
}

func (r *Repo) DeleteWeight(id int64) (int64, error) {
	return r.store.DeleteWeight(id)
}

func (r *Repo) Weights() ([]model.WeightEntry, error) {
	return r.store.Weights()
}

func (r *Repo) WeightsInRange(from, to time.Time) ([]model.WeightEntry, error) {
	return r.store.WeightsInRange(from, to)
}

// LastWeight returns the most recently logged entry, or nil when none
// exist.
func (r *Repo) LastWeight() (*model.WeightEntry, error) {
	return r.store.LatestWeight()
}

func (r *Repo) WatchWeights(ctx context.Context) *live.Subscription[[]model.WeightEntry] {
	return r.store.WatchWeights(ctx)
}

// --- workout logs ---

func (r *Repo) AddWorkout(w model.WorkoutLog) (int64, error) {
	w.OccurredAt = defaultNow(w.OccurredAt)
	return r.store.InsertWorkout(w)
}

func (r *Repo) UpdateWorkout(w model.WorkoutLog) (int64, error) {
	w.OccurredAt = defaultNow(w.OccurredAt)
	return r.store.UpdateWorkout(w)
}

func (r *Repo) DeleteWorkout(id int64) (int64, error) {
	return r.store.DeleteWorkout(id)
}

func (r *Repo) Workouts() ([]model.WorkoutLog, error) {
	return r.store.Workouts()
}

func (r *Repo) WatchWorkouts(ctx context.Context) *live.Subscription[[]model.WorkoutLog] {
	return r.store.WatchWorkouts(ctx)
}

// --- meal logs ---

func (r *Repo) AddMeal(m model.MealLog) (int64, error) {
	m.OccurredAt = defaultNow(m.OccurredAt)
	return r.store.InsertMeal(m)
}

func (r *Repo) UpdateMeal(m model.MealLog) (int64, error) {
	m.OccurredAt = defaultNow(m.OccurredAt)
	return r.store.UpdateMeal(m)
}

func (r *Repo) DeleteMeal(id int64) (int64, error) {
	return r.store.DeleteMeal(id)
}

func (r *Repo) Meals() ([]model.MealLog, error) {
	return r.store.Meals()
}

func (r *Repo) MealsForDay(day codec.Date) ([]model.MealLog, error) {
	return r.store.MealsForDay(day)
}

func (r *Repo) WatchMeals(ctx context.Context) *live.Subscription[[]model.MealLog] {
	return r.store.WatchMeals(ctx)
}

// WatchMealsForDay is a live view of one day's meals in eaten order.
func (r *Repo) WatchMealsForDay(ctx context.Context, day codec.Date) *live.Subscription[[]model.MealLog] {
	return live.Transform(r.store.WatchMeals(ctx), func(all []model.MealLog) []model.MealLog {
		out := make([]model.MealLog, 0)
		// The table snapshot is newest-first; walk it backwards for the
		// day's eaten order.
		for i := len(all) - 1; i >= 0; i-- {
			if codec.DateOf(all[i].OccurredAt) == day {
				out = append(out, all[i])
			}
		}
		return out
	})
}

// --- water logs ---

// AddWater persists a drink, defaulting occurred-at to now and deriving
// the day-granularity key from it.
func (r *Repo) AddWater(w model.WaterLog) (int64, error) {
	w.OccurredAt = defaultNow(w.OccurredAt)
	w.Day = codec.DateOf(w.OccurredAt)
	return r.store.InsertWater(w)
}

func (r *Repo) UpdateWater(w model.WaterLog) (int64, error) {
	w.OccurredAt = defaultNow(w.OccurredAt)
	w.Day = codec.DateOf(w.OccurredAt)
	return r.store.UpdateWater(w)
}

func (r *Repo) DeleteWater(id int64) (int64, error) {
	return r.store.DeleteWater(id)
}

func (r *Repo) Water() ([]model.WaterLog, error) {
	return r.store.Water()
}

func (r *Repo) WaterForDay(day codec.Date) ([]model.WaterLog, error) {
	return r.store.WaterForDay(day)
}

func (r *Repo) WaterTotalForDay(day codec.Date) (float64, error) {
	return r.store.WaterTotalForDay(day)
}

func (r *Repo) WatchWater(ctx context.Context) *live.Subscription[[]model.WaterLog] {
	return r.store.WatchWater(ctx)
}

// WatchWaterTotalForDay is a live running total for one day, in
// milliliters.
func (r *Repo) WatchWaterTotalForDay(ctx context.Context, day codec.Date) *live.Subscription[float64] {
	return live.Transform(r.store.WatchWater(ctx), func(all []model.WaterLog) float64 {
		var total float64
		for _, w := range all {
			if w.Day == day {
				total += w.AmountMl
			}
		}
		return total
	})
}

// --- equipment ---

func (r *Repo) SetEquipment(f model.EquipmentFlag) error {
	return r.store.SetEquipment(f)
}

func (r *Repo) DeleteEquipment(equipmentID string) (int64, error) {
	return r.store.DeleteEquipment(equipmentID)
}

func (r *Repo) Equipment() ([]model.EquipmentFlag, error) {
	return r.store.Equipment()
}

func (r *Repo) WatchEquipment(ctx context.Context) *live.Subscription[[]model.EquipmentFlag] {
	return r.store.WatchEquipment(ctx)
}

// --- reset ---

// ResetData destroys every record and the profile. Once it returns,
// WatchProfile emits nil and every log view emits empty.
func (r *Repo) ResetData() error {
	return r.store.ResetAll()
}
