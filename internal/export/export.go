// Package export renders a consistent snapshot of the store as JSON for
// external tools. Temporal fields use the same ISO text the store
// persists, so an export round-trips cleanly through the codec.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/store"
)

type Document struct {
	TakenAt   string          `json:"taken_at"`
	Profile   *Profile        `json:"profile,omitempty"`
	Weights   []WeightEntry   `json:"weight_entries"`
	Workouts  []WorkoutLog    `json:"workout_logs"`
	Meals     []MealLog       `json:"meal_logs"`
	Water     []WaterLog      `json:"water_logs"`
	Equipment []EquipmentFlag `json:"equipment"`
}

type Profile struct {
	Name            *string  `json:"name,omitempty"`
	Age             *int     `json:"age,omitempty"`
	HeightCm        *float64 `json:"height_cm,omitempty"`
	StartWeightKg   float64  `json:"start_weight_kg"`
	CurrentWeightKg float64  `json:"current_weight_kg"`
	TargetWeightKg  float64  `json:"target_weight_kg"`
	TargetDate      string   `json:"target_date,omitempty"`
	ReminderEnabled bool     `json:"reminder_enabled"`
	ReminderTime    string   `json:"reminder_time,omitempty"`
	DarkMode        *bool    `json:"dark_mode,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

type WeightEntry struct {
	ID         int64   `json:"id"`
	WeightKg   float64 `json:"weight_kg"`
	OccurredAt string  `json:"occurred_at"`
	Note       *string `json:"note,omitempty"`
}

type WorkoutLog struct {
	ID             int64  `json:"id"`
	OccurredAt     string `json:"occurred_at"`
	Type           string `json:"type"`
	Completed      bool   `json:"completed"`
	DurationMin    *int   `json:"duration_min,omitempty"`
	CaloriesBurned *int   `json:"calories_burned,omitempty"`
}

type MealLog struct {
	ID          int64    `json:"id"`
	OccurredAt  string   `json:"occurred_at"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Calories    *int     `json:"calories,omitempty"`
	ProteinG    *float64 `json:"protein_g,omitempty"`
}

type WaterLog struct {
	ID         int64   `json:"id"`
	Day        string  `json:"day"`
	OccurredAt string  `json:"occurred_at"`
	AmountMl   float64 `json:"amount_ml"`
}

type EquipmentFlag struct {
	EquipmentID string `json:"equipment_id"`
	IsAvailable bool   `json:"is_available"`
}

// Write takes a consistent snapshot of st and streams it to w as
// indented JSON.
func Write(st *store.Store, w io.Writer) error {
	snap, err := st.TakeSnapshot()
	if err != nil {
		return err
	}
	doc := fromSnapshot(snap)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

func fromSnapshot(snap store.Snapshot) Document {
	doc := Document{
		TakenAt:   codec.EncodeDateTime(codec.Truncate(snap.TakenAt)),
		Weights:   make([]WeightEntry, 0, len(snap.Weights)),
		Workouts:  make([]WorkoutLog, 0, len(snap.Workouts)),
		Meals:     make([]MealLog, 0, len(snap.Meals)),
		Water:     make([]WaterLog, 0, len(snap.Water)),
		Equipment: make([]EquipmentFlag, 0, len(snap.Equipment)),
	}
	if p := snap.Profile; p != nil {
		out := Profile{
			Name:            p.Name,
			Age:             p.Age,
			HeightCm:        p.HeightCm,
			StartWeightKg:   p.StartWeightKg,
			CurrentWeightKg: p.CurrentWeightKg,
			TargetWeightKg:  p.TargetWeightKg,
			ReminderEnabled: p.ReminderEnabled,
			DarkMode:        p.DarkMode,
			CreatedAt:       codec.EncodeDateTime(p.CreatedAt),
		}
		if p.TargetDate != nil {
			out.TargetDate = codec.EncodeDate(*p.TargetDate)
		}
		if p.ReminderTime != nil {
			out.ReminderTime = codec.EncodeTimeOfDay(*p.ReminderTime)
		}
		doc.Profile = &out
	}
	for _, e := range snap.Weights {
		doc.Weights = append(doc.Weights, WeightEntry{
			ID:         e.ID,
			WeightKg:   e.WeightKg,
			OccurredAt: codec.EncodeDateTime(e.OccurredAt),
			Note:       e.Note,
		})
	}
	for _, w := range snap.Workouts {
		doc.Workouts = append(doc.Workouts, WorkoutLog{
			ID:             w.ID,
			OccurredAt:     codec.EncodeDateTime(w.OccurredAt),
			Type:           w.Type.String(),
			Completed:      w.Completed,
			DurationMin:    w.DurationMin,
			CaloriesBurned: w.CaloriesBurned,
		})
	}
	for _, m := range snap.Meals {
		doc.Meals = append(doc.Meals, MealLog{
			ID:          m.ID,
			OccurredAt:  codec.EncodeDateTime(m.OccurredAt),
			Type:        m.Type.String(),
			Description: m.Description,
			Calories:    m.Calories,
			ProteinG:    m.ProteinG,
		})
	}
	for _, w := range snap.Water {
		doc.Water = append(doc.Water, WaterLog{
			ID:         w.ID,
			Day:        codec.EncodeDate(w.Day),
			OccurredAt: codec.EncodeDateTime(w.OccurredAt),
			AmountMl:   w.AmountMl,
		})
	}
	for _, f := range snap.Equipment {
		doc.Equipment = append(doc.Equipment, EquipmentFlag{
			EquipmentID: f.EquipmentID,
			IsAvailable: f.IsAvailable,
		})
	}
	return doc
}
