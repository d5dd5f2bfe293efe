package backup_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitlog/fitlog-cli/internal/backup"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/store"
)

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()
	st, err := store.Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func seedWeight(t *testing.T, st *store.Store) {
	t.Helper()
	e := model.WeightEntry{WeightKg: 80, OccurredAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)}
	if _, err := st.InsertWeight(e); err != nil {
		t.Fatalf("seed weight: %v", err)
	}
}

func TestCreateWritesBackupAndChecksum(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	st := openStore(t, filepath.Join(dir, "fitlog.db"))
	defer st.Close()
	seedWeight(t, st)

	out := filepath.Join(dir, "backups", "fitlog.db.bak")
	info, err := backup.Create(st, out)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if info.Path != out || info.SizeBytes == 0 || info.Checksum == "" {
		t.Fatalf("info = %+v", info)
	}

	sum, err := os.ReadFile(out + ".sha256")
	if err != nil {
		t.Fatalf("read checksum file: %v", err)
	}
	if strings.TrimSpace(string(sum)) != info.Checksum {
		t.Fatalf("checksum file %q does not match info %q", sum, info.Checksum)
	}
}

func TestCreateRequiresPath(t *testing.T) {
	t.Parallel()
	st := openStore(t, filepath.Join(t.TempDir(), "fitlog.db"))
	defer st.Close()

	if _, err := backup.Create(st, "  "); err == nil {
		t.Fatalf("expected error for blank output path")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fitlog.db")

	st := openStore(t, dbPath)
	seedWeight(t, st)
	out := filepath.Join(dir, "fitlog.db.bak")
	if _, err := backup.Create(st, out); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	restored := filepath.Join(dir, "restored", "fitlog.db")
	if err := backup.Restore(out, restored, false); err != nil {
		t.Fatalf("restore: %v", err)
	}

	st2 := openStore(t, restored)
	defer st2.Close()
	n, err := st2.CountWeights()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("restored store has %d entries, want 1", n)
	}
}

func TestRestoreRefusesExistingTarget(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fitlog.db")

	st := openStore(t, dbPath)
	out := filepath.Join(dir, "fitlog.db.bak")
	if _, err := backup.Create(st, out); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := backup.Restore(out, dbPath, false); err == nil {
		t.Fatalf("expected refusal to overwrite existing db")
	}
	if err := backup.Restore(out, dbPath, true); err != nil {
		t.Fatalf("forced restore: %v", err)
	}
}

func TestRestoreDetectsCorruption(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	st := openStore(t, filepath.Join(dir, "fitlog.db"))
	seedWeight(t, st)
	out := filepath.Join(dir, "fitlog.db.bak")
	if _, err := backup.Create(st, out); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Flip bytes in the backup; the checksum file still holds the original.
	if err := os.WriteFile(out, []byte("not a database"), 0o644); err != nil {
		t.Fatalf("corrupt backup: %v", err)
	}
	err := backup.Restore(out, filepath.Join(dir, "restored.db"), false)
	if err == nil || !strings.Contains(err.Error(), "checksum") {
		t.Fatalf("restore on corrupted backup = %v, want checksum mismatch", err)
	}
}
