package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

const workoutColumns = `id, occurred_at, workout_type, completed, duration_min, calories_burned`

func validateWorkout(w model.WorkoutLog) error {
	if _, err := model.ParseWorkoutType(string(w.Type)); err != nil {
		return err
	}
	if w.OccurredAt.IsZero() {
		return fmt.Errorf("workout occurred-at is required")
	}
	if w.DurationMin != nil && *w.DurationMin <= 0 {
		return fmt.Errorf("workout duration must be > 0")
	}
	if w.CaloriesBurned != nil && *w.CaloriesBurned <= 0 {
		return fmt.Errorf("calories burned must be > 0")
	}
	return nil
}

func (s *Store) InsertWorkout(w model.WorkoutLog) (int64, error) {
	if err := validateWorkout(w); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.workoutMu.Lock()
	defer s.workoutMu.Unlock()

	occurred := codec.EncodeDateTime(codec.Truncate(w.OccurredAt))
	var (
		res sql.Result
		err error
	)
	if w.ID > 0 {
		res, err = s.exec("insert workout log",
			`INSERT OR REPLACE INTO workout_logs(id, occurred_at, workout_type, completed, duration_min, calories_burned) VALUES(?, ?, ?, ?, ?, ?)`,
			w.ID, occurred, string(w.Type), w.Completed, w.DurationMin, w.CaloriesBurned)
	} else {
		res, err = s.exec("insert workout log",
			`INSERT INTO workout_logs(occurred_at, workout_type, completed, duration_min, calories_burned) VALUES(?, ?, ?, ?, ?)`,
			occurred, string(w.Type), w.Completed, w.DurationMin, w.CaloriesBurned)
	}
	if err != nil {
		return 0, err
	}
	id := w.ID
	if id == 0 {
		if id, err = lastInsertID("insert workout log", res); err != nil {
			return 0, err
		}
	}
	notify(s.workoutFeed, s.readWorkouts)
	return id, nil
}

func (s *Store) UpdateWorkout(w model.WorkoutLog) (int64, error) {
	if w.ID <= 0 {
		return 0, fmt.Errorf("workout log id must be > 0")
	}
	if err := validateWorkout(w); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.workoutMu.Lock()
	defer s.workoutMu.Unlock()

	res, err := s.exec("update workout log",
		`UPDATE workout_logs SET occurred_at = ?, workout_type = ?, completed = ?, duration_min = ?, calories_burned = ? WHERE id = ?`,
		codec.EncodeDateTime(codec.Truncate(w.OccurredAt)), string(w.Type), w.Completed, w.DurationMin, w.CaloriesBurned, w.ID)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("update workout log", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.workoutFeed, s.readWorkouts)
	}
	return n, nil
}

func (s *Store) DeleteWorkout(id int64) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("workout log id must be > 0")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.workoutMu.Lock()
	defer s.workoutMu.Unlock()

	res, err := s.exec("delete workout log", `DELETE FROM workout_logs WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("delete workout log", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.workoutFeed, s.readWorkouts)
	}
	return n, nil
}

// Workouts returns every log, newest first.
func (s *Store) Workouts() ([]model.WorkoutLog, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.readWorkouts()
}

// WorkoutsInRange returns logs with from <= occurredAt < to, newest first.
func (s *Store) WorkoutsInRange(from, to time.Time) ([]model.WorkoutLog, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.scanWorkouts(`SELECT `+workoutColumns+` FROM workout_logs
WHERE occurred_at >= ? AND occurred_at < ?
ORDER BY occurred_at DESC, id ASC`,
		codec.EncodeDateTime(codec.Truncate(from)), codec.EncodeDateTime(codec.Truncate(to)))
}

// CountCompletedWorkouts reports how many logs are marked completed.
func (s *Store) CountCompletedWorkouts() (int64, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM workout_logs WHERE completed = 1`).Scan(&n); err != nil {
		return 0, storageErr("count completed workouts", err)
	}
	return n, nil
}

func (s *Store) WatchWorkouts(ctx context.Context) *live.Subscription[[]model.WorkoutLog] {
	s.global.RLock()
	defer s.global.RUnlock()
	return subscribe(ctx, &s.workoutMu, s.workoutFeed, s.readWorkouts)
}

func (s *Store) readWorkouts() ([]model.WorkoutLog, error) {
	return s.scanWorkouts(`SELECT ` + workoutColumns + ` FROM workout_logs
ORDER BY occurred_at DESC, id ASC`)
}

func (s *Store) scanWorkouts(query string, args ...any) ([]model.WorkoutLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list workout logs", err)
	}
	defer rows.Close()

	logs := make([]model.WorkoutLog, 0)
	for rows.Next() {
		var (
			w        model.WorkoutLog
			occurred string
			typ      string
			duration sql.NullInt64
			calories sql.NullInt64
		)
		if err := rows.Scan(&w.ID, &occurred, &typ, &w.Completed, &duration, &calories); err != nil {
			return nil, storageErr("scan workout log", err)
		}
		if w.OccurredAt, err = codec.DecodeDateTime(occurred); err != nil {
			return nil, err
		}
		if w.Type, err = model.ParseWorkoutType(typ); err != nil {
			return nil, err
		}
		if duration.Valid {
			v := int(duration.Int64)
			w.DurationMin = &v
		}
		if calories.Valid {
			v := int(calories.Int64)
			w.CaloriesBurned = &v
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate workout logs", err)
	}
	return logs, nil
}
