package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

const mealColumns = `id, occurred_at, meal_type, description, calories, protein_g`

func validateMeal(m model.MealLog) error {
	if _, err := model.ParseMealType(string(m.Type)); err != nil {
		return err
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("meal description is required")
	}
	if m.OccurredAt.IsZero() {
		return fmt.Errorf("meal occurred-at is required")
	}
	if m.Calories != nil && *m.Calories < 0 {
		return fmt.Errorf("calories must be >= 0")
	}
	if m.ProteinG != nil && *m.ProteinG < 0 {
		return fmt.Errorf("protein must be >= 0")
	}
	return nil
}

func (s *Store) InsertMeal(m model.MealLog) (int64, error) {
	if err := validateMeal(m); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.mealMu.Lock()
	defer s.mealMu.Unlock()

	occurred := codec.EncodeDateTime(codec.Truncate(m.OccurredAt))
	desc := strings.TrimSpace(m.Description)
	var (
		res sql.Result
		err error
	)
	if m.ID > 0 {
		res, err = s.exec("insert meal log",
			`INSERT OR REPLACE INTO meal_logs(id, occurred_at, meal_type, description, calories, protein_g) VALUES(?, ?, ?, ?, ?, ?)`,
			m.ID, occurred, string(m.Type), desc, m.Calories, m.ProteinG)
	} else {
		res, err = s.exec("insert meal log",
			`INSERT INTO meal_logs(occurred_at, meal_type, description, calories, protein_g) VALUES(?, ?, ?, ?, ?)`,
			occurred, string(m.Type), desc, m.Calories, m.ProteinG)
	}
	if err != nil {
		return 0, err
	}
	id := m.ID
	if id == 0 {
		if id, err = lastInsertID("insert meal log", res); err != nil {
			return 0, err
		}
	}
	notify(s.mealFeed, s.readMeals)
	return id, nil
}

func (s *Store) UpdateMeal(m model.MealLog) (int64, error) {
	if m.ID <= 0 {
		return 0, fmt.Errorf("meal log id must be > 0")
	}
	if err := validateMeal(m); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.mealMu.Lock()
	defer s.mealMu.Unlock()

	res, err := s.exec("update meal log",
		`UPDATE meal_logs SET occurred_at = ?, meal_type = ?, description = ?, calories = ?, protein_g = ? WHERE id = ?`,
		codec.EncodeDateTime(codec.Truncate(m.OccurredAt)), string(m.Type), strings.TrimSpace(m.Description), m.Calories, m.ProteinG, m.ID)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("update meal log", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.mealFeed, s.readMeals)
	}
	return n, nil
}

func (s *Store) DeleteMeal(id int64) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("meal log id must be > 0")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.mealMu.Lock()
	defer s.mealMu.Unlock()

	res, err := s.exec("delete meal log", `DELETE FROM meal_logs WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("delete meal log", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.mealFeed, s.readMeals)
	}
	return n, nil
}

// Meals returns every log, newest first.
func (s *Store) Meals() ([]model.MealLog, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.readMeals()
}

// MealsForDay returns the meals of one calendar day in the order they
// were eaten, oldest first.
func (s *Store) MealsForDay(day codec.Date) ([]model.MealLog, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	start := day.Time()
	end := start.Add(24 * time.Hour)
	return s.scanMeals(`SELECT `+mealColumns+` FROM meal_logs
WHERE occurred_at >= ? AND occurred_at < ?
ORDER BY occurred_at ASC, id ASC`,
		codec.EncodeDateTime(start), codec.EncodeDateTime(end))
}

func (s *Store) WatchMeals(ctx context.Context) *live.Subscription[[]model.MealLog] {
	s.global.RLock()
	defer s.global.RUnlock()
	return subscribe(ctx, &s.mealMu, s.mealFeed, s.readMeals)
}

func (s *Store) readMeals() ([]model.MealLog, error) {
	return s.scanMeals(`SELECT ` + mealColumns + ` FROM meal_logs
ORDER BY occurred_at DESC, id ASC`)
}

func (s *Store) scanMeals(query string, args ...any) ([]model.MealLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list meal logs", err)
	}
	defer rows.Close()

	logs := make([]model.MealLog, 0)
	for rows.Next() {
		var (
			m        model.MealLog
			occurred string
			typ      string
			calories sql.NullInt64
			protein  sql.NullFloat64
		)
		if err := rows.Scan(&m.ID, &occurred, &typ, &m.Description, &calories, &protein); err != nil {
			return nil, storageErr("scan meal log", err)
		}
		if m.OccurredAt, err = codec.DecodeDateTime(occurred); err != nil {
			return nil, err
		}
		if m.Type, err = model.ParseMealType(typ); err != nil {
			return nil, err
		}
		if calories.Valid {
			v := int(calories.Int64)
			m.Calories = &v
		}
		if protein.Valid {
			v := protein.Float64
			m.ProteinG = &v
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate meal logs", err)
	}
	return logs, nil
}
