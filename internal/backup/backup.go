// Package backup copies the database file to and from backup locations.
// Creation runs under the store's exclusive lock, so the copied file is a
// point-in-time consistent snapshot. Restore works on a closed database
// only; the caller re-opens the store afterwards.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fitlog/fitlog-cli/internal/store"
)

type Info struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// Create copies st's database file to outPath while holding the store's
// exclusive lock, and writes a sha256 checksum file alongside.
func Create(st *store.Store, outPath string) (Info, error) {
	if strings.TrimSpace(outPath) == "" {
		return Info{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Info{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := st.WithExclusive(func() error {
		return copyFile(st.Path(), outPath)
	}); err != nil {
		return Info{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return Info{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return Info{}, fmt.Errorf("write checksum file: %w", err)
	}
	fi, err := os.Stat(outPath)
	if err != nil {
		return Info{}, fmt.Errorf("stat backup: %w", err)
	}
	return Info{Path: outPath, Checksum: checksum, CreatedAt: fi.ModTime(), SizeBytes: fi.Size()}, nil
}

// Restore copies a backup over dbPath. It refuses to overwrite an
// existing database unless force is set, and verifies the checksum file
// when one exists next to the backup.
func Restore(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
