package tests

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"
)

func buildFitlogBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "fitlog")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build fitlog binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runFitlog(t *testing.T, binPath, dbPath string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run fitlog command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func initDB(t *testing.T, binPath, dbPath string) {
	t.Helper()
	_, stderr, exit := runFitlog(t, binPath, dbPath, "init")
	if exit != 0 {
		t.Fatalf("init db failed: exit=%d stderr=%s", exit, stderr)
	}
}

func mustRun(t *testing.T, binPath, dbPath string, args ...string) string {
	t.Helper()
	stdout, stderr, exit := runFitlog(t, binPath, dbPath, args...)
	if exit != 0 {
		t.Fatalf("fitlog %v failed: exit=%d stderr=%s", args, exit, stderr)
	}
	return stdout
}
