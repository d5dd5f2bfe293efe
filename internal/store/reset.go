package store

import (
	"time"

	"github.com/fitlog/fitlog-cli/internal/db"
	"github.com/fitlog/fitlog-cli/internal/model"
)

// ResetAll atomically empties every table, returning the store to its
// pre-onboarding state. It holds the store-wide exclusive lock for its
// duration, so no reader or writer observes a half-reset state, and every
// live subscription receives an empty snapshot afterwards.
func (s *Store) ResetAll() error {
	s.global.Lock()
	defer s.global.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("begin reset", err)
	}
	for _, t := range db.Tables() {
		if _, err := tx.Exec(`DELETE FROM ` + t); err != nil {
			_ = tx.Rollback()
			return storageErr("reset table "+t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit reset", err)
	}

	s.log.Info().Msg("store reset, all tables emptied")

	// The tables are known empty; publish that directly instead of
	// re-reading each one.
	s.profileFeed.Publish(nil)
	s.weightFeed.Publish([]model.WeightEntry{})
	s.workoutFeed.Publish([]model.WorkoutLog{})
	s.mealFeed.Publish([]model.MealLog{})
	s.waterFeed.Publish([]model.WaterLog{})
	s.equipmentFeed.Publish([]model.EquipmentFlag{})
	return nil
}

// Snapshot is a point-in-time consistent view across every table, read
// under the same exclusivity ResetAll uses. It backs the backup/export
// collaborators.
type Snapshot struct {
	TakenAt   time.Time
	Profile   *model.Profile
	Weights   []model.WeightEntry
	Workouts  []model.WorkoutLog
	Meals     []model.MealLog
	Water     []model.WaterLog
	Equipment []model.EquipmentFlag
}

// TakeSnapshot reads all tables while holding the store-wide exclusive
// lock, so the result is consistent even against concurrent writers.
func (s *Store) TakeSnapshot() (Snapshot, error) {
	s.global.Lock()
	defer s.global.Unlock()

	snap := Snapshot{TakenAt: time.Now()}
	var err error
	if snap.Profile, err = s.readProfile(); err != nil {
		return Snapshot{}, err
	}
	if snap.Weights, err = s.readWeights(); err != nil {
		return Snapshot{}, err
	}
	if snap.Workouts, err = s.readWorkouts(); err != nil {
		return Snapshot{}, err
	}
	if snap.Meals, err = s.readMeals(); err != nil {
		return Snapshot{}, err
	}
	if snap.Water, err = s.readWater(); err != nil {
		return Snapshot{}, err
	}
	if snap.Equipment, err = s.readEquipment(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// WithExclusive runs fn while no table can be read or written, for
// collaborators that need the database file itself quiescent (backups).
func (s *Store) WithExclusive(fn func() error) error {
	s.global.Lock()
	defer s.global.Unlock()
	return fn()
}
