package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the single integer identifying the current table
// layout, kept in PRAGMA user_version.
const SchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  name TEXT,
  age INTEGER CHECK(age > 0),
  height_cm REAL CHECK(height_cm > 0),
  start_weight_kg REAL NOT NULL CHECK(start_weight_kg > 0),
  current_weight_kg REAL NOT NULL CHECK(current_weight_kg > 0),
  target_weight_kg REAL NOT NULL CHECK(target_weight_kg > 0),
  target_date TEXT,
  reminder_enabled INTEGER NOT NULL DEFAULT 0,
  reminder_time TEXT,
  dark_mode INTEGER,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weight_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  occurred_at TEXT NOT NULL,
  note TEXT
);

CREATE INDEX IF NOT EXISTS idx_weight_entries_occurred_at ON weight_entries(occurred_at);

CREATE TABLE IF NOT EXISTS workout_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  occurred_at TEXT NOT NULL,
  workout_type TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  duration_min INTEGER CHECK(duration_min > 0),
  calories_burned INTEGER CHECK(calories_burned > 0)
);

CREATE INDEX IF NOT EXISTS idx_workout_logs_occurred_at ON workout_logs(occurred_at);

CREATE TABLE IF NOT EXISTS meal_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  occurred_at TEXT NOT NULL,
  meal_type TEXT NOT NULL,
  description TEXT NOT NULL,
  calories INTEGER CHECK(calories >= 0),
  protein_g REAL CHECK(protein_g >= 0)
);

CREATE INDEX IF NOT EXISTS idx_meal_logs_occurred_at ON meal_logs(occurred_at);

CREATE TABLE IF NOT EXISTS water_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  day TEXT NOT NULL,
  occurred_at TEXT NOT NULL,
  amount_ml REAL NOT NULL CHECK(amount_ml > 0)
);

CREATE INDEX IF NOT EXISTS idx_water_logs_day ON water_logs(day);
CREATE INDEX IF NOT EXISTS idx_water_logs_occurred_at ON water_logs(occurred_at);

CREATE TABLE IF NOT EXISTS equipment (
  equipment_id TEXT PRIMARY KEY,
  is_available INTEGER NOT NULL DEFAULT 0
);
`

var tables = []string{
	"profile",
	"weight_entries",
	"workout_logs",
	"meal_logs",
	"water_logs",
	"equipment",
}

// Tables lists every table the schema owns, in a fixed order.
func Tables() []string {
	return append([]string(nil), tables...)
}

// MismatchPolicy decides what happens when the file's schema version does
// not match SchemaVersion. The caller re-creates the schema afterwards.
type MismatchPolicy func(*sql.DB) error

// DestroyAndRecreate drops every known table. It is the default policy:
// on version mismatch all data is lost and the schema is rebuilt from
// scratch. Callers needing data-preserving migration must supply their
// own policy.
func DestroyAndRecreate(sqldb *sql.DB) error {
	for _, t := range tables {
		if _, err := sqldb.Exec(`DROP TABLE IF EXISTS ` + t); err != nil {
			return fmt.Errorf("drop table %s: %w", t, err)
		}
	}
	return nil
}

// Prepare brings the database to the current schema using the default
// destructive mismatch policy.
func Prepare(sqldb *sql.DB) error {
	return PrepareWith(sqldb, DestroyAndRecreate)
}

// PrepareWith checks the stored schema version, applies onMismatch when it
// differs from SchemaVersion, and (re)creates the schema. A fresh file
// (version 0) is initialized without invoking the policy.
func PrepareWith(sqldb *sql.DB, onMismatch MismatchPolicy) error {
	var version int
	if err := sqldb.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != 0 && version != SchemaVersion {
		if err := onMismatch(sqldb); err != nil {
			return fmt.Errorf("schema mismatch (have %d, want %d): %w", version, SchemaVersion, err)
		}
	}
	if _, err := sqldb.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := sqldb.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}
