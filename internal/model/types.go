package model

import (
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
)

// ProfileID is the fixed key of the singleton profile row. The store never
// holds more than one profile; its presence is the "onboarded" signal.
const ProfileID int64 = 1

type Profile struct {
	ID              int64
	Name            *string
	Age             *int
	HeightCm        *float64
	StartWeightKg   float64
	CurrentWeightKg float64
	TargetWeightKg  float64
	TargetDate      *codec.Date
	ReminderEnabled bool
	ReminderTime    *codec.TimeOfDay
	DarkMode        *bool
	CreatedAt       time.Time
}

type WeightEntry struct {
	ID         int64
	WeightKg   float64
	OccurredAt time.Time
	Note       *string
}

type WorkoutLog struct {
	ID             int64
	OccurredAt     time.Time
	Type           WorkoutType
	Completed      bool
	DurationMin    *int
	CaloriesBurned *int
}

type MealLog struct {
	ID          int64
	OccurredAt  time.Time
	Type        MealType
	Description string
	Calories    *int
	ProteinG    *float64
}

type WaterLog struct {
	ID         int64
	Day        codec.Date
	OccurredAt time.Time
	AmountMl   float64
}

// EquipmentFlag records whether a piece of equipment from the fixed catalog
// is available to the user. Not time-ordered, so it never joins the
// history feed.
type EquipmentFlag struct {
	EquipmentID string
	IsAvailable bool
}
