package tests

import (
	"path/filepath"
	"strings"
	"testing"
)

// Walks one user's day end to end: onboarding, logging every record
// kind, reviewing the merged history, and checking the live day totals
// through their one-shot equivalents.
func TestDayInLife(t *testing.T) {
	binPath := buildFitlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fitlog.db")
	initDB(t, binPath, dbPath)

	// Before onboarding the status command says so.
	out := mustRun(t, binPath, dbPath, "profile", "status")
	if !strings.Contains(out, "Onboarded: false") {
		t.Fatalf("status before onboarding:\n%s", out)
	}

	out = mustRun(t, binPath, dbPath, "profile", "set",
		"--name", "Sam", "--age", "34", "--height", "178",
		"--start-weight", "92", "--target-weight", "80",
		"--target-date", "2026-09-01", "--dark-mode", "true")
	if !strings.Contains(out, "first weight entry logged") {
		t.Fatalf("profile set output:\n%s", out)
	}

	out = mustRun(t, binPath, dbPath, "profile", "status")
	if !strings.Contains(out, "Onboarded: true") || !strings.Contains(out, "Theme: dark") {
		t.Fatalf("status after onboarding:\n%s", out)
	}

	// Onboarding seeded the weight history with the start weight.
	out = mustRun(t, binPath, dbPath, "weight", "last")
	if !strings.Contains(out, "92.0 kg") {
		t.Fatalf("weight last after onboarding:\n%s", out)
	}

	mustRun(t, binPath, dbPath, "weight", "add", "--weight", "91.4",
		"--date", "2026-03-14", "--time", "07:30")
	mustRun(t, binPath, dbPath, "meal", "add", "--type", "breakfast",
		"--desc", "oats with berries", "--calories", "420", "--protein", "18",
		"--date", "2026-03-14", "--time", "07:45")
	mustRun(t, binPath, dbPath, "water", "add", "--amount", "250",
		"--date", "2026-03-14", "--time", "08:00")
	mustRun(t, binPath, dbPath, "workout", "add", "--type", "bike",
		"--duration", "45", "--calories", "380",
		"--date", "2026-03-14", "--time", "18:00")
	mustRun(t, binPath, dbPath, "meal", "add", "--type", "dinner",
		"--desc", "salmon and rice", "--calories", "650",
		"--date", "2026-03-14", "--time", "19:30")
	mustRun(t, binPath, dbPath, "water", "add", "--amount", "500",
		"--date", "2026-03-14", "--time", "20:00")

	// Logging a weight also moves the profile's current weight.
	out = mustRun(t, binPath, dbPath, "profile", "show")
	if !strings.Contains(out, "current 91.4") {
		t.Fatalf("profile show after weight add:\n%s", out)
	}

	// One day's meals come back in eaten order.
	out = mustRun(t, binPath, dbPath, "meal", "list", "--date", "2026-03-14")
	oats := strings.Index(out, "oats with berries")
	salmon := strings.Index(out, "salmon and rice")
	if oats < 0 || salmon < 0 || oats > salmon {
		t.Fatalf("meal list not in eaten order:\n%s", out)
	}

	out = mustRun(t, binPath, dbPath, "water", "list", "--date", "2026-03-14")
	if !strings.Contains(out, "250") || !strings.Contains(out, "500") {
		t.Fatalf("water list:\n%s", out)
	}

	// The merged history is newest first across all four kinds. The
	// onboarding weight entry was logged at wall-clock now, so it leads.
	out = mustRun(t, binPath, dbPath, "history")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var gotKinds []string
	for _, line := range lines[1:] {
		gotKinds = append(gotKinds, strings.SplitN(line, "\t", 2)[0])
	}
	want := []string{"weight", "water", "meal", "workout", "water", "meal", "weight"}
	if len(gotKinds) != len(want) {
		t.Fatalf("history has %d rows, want %d:\n%s", len(gotKinds), len(want), out)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("history order = %v, want %v:\n%s", gotKinds, want, out)
		}
	}

	// Export renders the whole store.
	out = mustRun(t, binPath, dbPath, "export")
	for _, needle := range []string{`"weight_entries"`, `"meal_logs"`, `"oats with berries"`, `"BREAKFAST"`} {
		if !strings.Contains(out, needle) {
			t.Fatalf("export missing %s:\n%s", needle, out)
		}
	}
}

func TestBackupAndRestoreFlow(t *testing.T) {
	binPath := buildFitlogBinary(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fitlog.db")
	initDB(t, binPath, dbPath)

	mustRun(t, binPath, dbPath, "weight", "add", "--weight", "88",
		"--date", "2026-03-14", "--time", "07:30")

	backupPath := filepath.Join(dir, "fitlog.bak")
	out := mustRun(t, binPath, dbPath, "backup", "create", "--out", backupPath)
	if !strings.Contains(out, backupPath) {
		t.Fatalf("backup create output:\n%s", out)
	}

	// Restoring over the live db requires --force.
	_, stderr, exit := runFitlog(t, binPath, dbPath, "backup", "restore", backupPath)
	if exit == 0 {
		t.Fatalf("restore over existing db succeeded without --force")
	}
	if !strings.Contains(stderr, "force") {
		t.Fatalf("restore refusal stderr:\n%s", stderr)
	}

	restoredPath := filepath.Join(dir, "restored.db")
	mustRun(t, binPath, restoredPath, "backup", "restore", backupPath)
	out = mustRun(t, binPath, restoredPath, "weight", "last")
	if !strings.Contains(out, "88.0 kg") {
		t.Fatalf("restored db weight last:\n%s", out)
	}
}

func TestResetReturnsToPreOnboarding(t *testing.T) {
	binPath := buildFitlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fitlog.db")
	initDB(t, binPath, dbPath)

	mustRun(t, binPath, dbPath, "profile", "set", "--start-weight", "92", "--target-weight", "80")
	mustRun(t, binPath, dbPath, "equipment", "set", "yoga_mat")

	// Without --force the wipe is refused.
	_, stderr, exit := runFitlog(t, binPath, dbPath, "reset")
	if exit == 0 {
		t.Fatalf("reset succeeded without --force")
	}
	if !strings.Contains(stderr, "--force") {
		t.Fatalf("reset refusal stderr:\n%s", stderr)
	}

	mustRun(t, binPath, dbPath, "reset", "--force")

	out := mustRun(t, binPath, dbPath, "profile", "status")
	if !strings.Contains(out, "Onboarded: false") {
		t.Fatalf("status after reset:\n%s", out)
	}
	out = mustRun(t, binPath, dbPath, "weight", "last")
	if !strings.Contains(out, "No weight entries yet") {
		t.Fatalf("weight last after reset:\n%s", out)
	}
}
