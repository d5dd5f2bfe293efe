package export_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/export"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "fitlog.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestWriteEmptyStore(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	var buf bytes.Buffer
	if err := export.Write(st, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	var doc export.Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Profile != nil {
		t.Fatalf("profile = %+v, want absent", doc.Profile)
	}
	// Empty tables export as empty arrays, not null.
	if doc.Weights == nil || doc.Meals == nil || doc.Workouts == nil || doc.Water == nil || doc.Equipment == nil {
		t.Fatalf("empty tables exported as null: %s", buf.String())
	}
	if doc.TakenAt == "" {
		t.Fatalf("taken_at missing")
	}
}

func TestWriteFullStore(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	name := "Sam"
	if _, err := st.UpsertProfile(model.Profile{
		Name:            &name,
		StartWeightKg:   92,
		CurrentWeightKg: 90,
		TargetWeightKg:  80,
		CreatedAt:       time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	when := time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local)
	if _, err := st.InsertWeight(model.WeightEntry{WeightKg: 90, OccurredAt: when}); err != nil {
		t.Fatalf("insert weight: %v", err)
	}
	if _, err := st.InsertMeal(model.MealLog{Type: model.MealBreakfast, Description: "oats", OccurredAt: when}); err != nil {
		t.Fatalf("insert meal: %v", err)
	}

	var buf bytes.Buffer
	if err := export.Write(st, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	var doc export.Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Profile == nil || doc.Profile.Name == nil || *doc.Profile.Name != "Sam" {
		t.Fatalf("profile = %+v", doc.Profile)
	}
	if len(doc.Weights) != 1 || doc.Weights[0].OccurredAt != codec.EncodeDateTime(when) {
		t.Fatalf("weights = %+v", doc.Weights)
	}
	if len(doc.Meals) != 1 || doc.Meals[0].Type != "BREAKFAST" {
		t.Fatalf("meals = %+v", doc.Meals)
	}
}
