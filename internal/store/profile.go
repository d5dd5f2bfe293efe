package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

const profileColumns = `id, name, age, height_cm, start_weight_kg, current_weight_kg, target_weight_kg,
target_date, reminder_enabled, reminder_time, dark_mode, created_at`

func validateProfile(p model.Profile) error {
	if p.StartWeightKg <= 0 || p.CurrentWeightKg <= 0 || p.TargetWeightKg <= 0 {
		return fmt.Errorf("profile weights must be > 0")
	}
	if p.Age != nil && *p.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if p.HeightCm != nil && *p.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("profile created-at is required")
	}
	return nil
}

// UpsertProfile writes the singleton profile row. The id is forced to the
// fixed key, so after any sequence of upserts exactly one profile exists.
func (s *Store) UpsertProfile(p model.Profile) (int64, error) {
	if err := validateProfile(p); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.profileMu.Lock()
	defer s.profileMu.Unlock()

	var targetDate, reminderTime any
	if p.TargetDate != nil {
		targetDate = codec.EncodeDate(*p.TargetDate)
	}
	if p.ReminderTime != nil {
		reminderTime = codec.EncodeTimeOfDay(*p.ReminderTime)
	}
	_, err := s.exec("upsert profile",
		`INSERT OR REPLACE INTO profile(id, name, age, height_cm, start_weight_kg, current_weight_kg, target_weight_kg,
target_date, reminder_enabled, reminder_time, dark_mode, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.ProfileID, p.Name, p.Age, p.HeightCm, p.StartWeightKg, p.CurrentWeightKg, p.TargetWeightKg,
		targetDate, p.ReminderEnabled, reminderTime, p.DarkMode,
		codec.EncodeDateTime(codec.Truncate(p.CreatedAt)))
	if err != nil {
		return 0, err
	}
	notify(s.profileFeed, s.readProfile)
	return model.ProfileID, nil
}

// UpdateProfileCurrentWeight replaces only the current weight. Returns 0
// without error when no profile exists yet.
func (s *Store) UpdateProfileCurrentWeight(weightKg float64) (int64, error) {
	if weightKg <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.profileMu.Lock()
	defer s.profileMu.Unlock()

	res, err := s.exec("update current weight",
		`UPDATE profile SET current_weight_kg = ? WHERE id = ?`, weightKg, model.ProfileID)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("update current weight", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.profileFeed, s.readProfile)
	}
	return n, nil
}

// Profile returns the singleton profile, or nil before onboarding.
func (s *Store) Profile() (*model.Profile, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.readProfile()
}

// WatchProfile is a live view of the singleton row; nil emissions mean no
// profile exists.
func (s *Store) WatchProfile(ctx context.Context) *live.Subscription[*model.Profile] {
	s.global.RLock()
	defer s.global.RUnlock()
	return subscribe(ctx, &s.profileMu, s.profileFeed, s.readProfile)
}

func (s *Store) readProfile() (*model.Profile, error) {
	var (
		p            model.Profile
		name         sql.NullString
		age          sql.NullInt64
		height       sql.NullFloat64
		targetDate   sql.NullString
		reminderTime sql.NullString
		darkMode     sql.NullBool
		createdAt    string
	)
	err := s.db.QueryRow(`SELECT `+profileColumns+` FROM profile WHERE id = ?`, model.ProfileID).Scan(
		&p.ID, &name, &age, &height, &p.StartWeightKg, &p.CurrentWeightKg, &p.TargetWeightKg,
		&targetDate, &p.ReminderEnabled, &reminderTime, &darkMode, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("read profile", err)
	}
	if name.Valid {
		v := name.String
		p.Name = &v
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if height.Valid {
		v := height.Float64
		p.HeightCm = &v
	}
	if targetDate.Valid {
		d, err := codec.DecodeDate(targetDate.String)
		if err != nil {
			return nil, err
		}
		p.TargetDate = &d
	}
	if reminderTime.Valid {
		td, err := codec.DecodeTimeOfDay(reminderTime.String)
		if err != nil {
			return nil, err
		}
		p.ReminderTime = &td
	}
	if darkMode.Valid {
		v := darkMode.Bool
		p.DarkMode = &v
	}
	if p.CreatedAt, err = codec.DecodeDateTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}
