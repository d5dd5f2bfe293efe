package fitlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fitlog/fitlog-cli/internal/app"
	"github.com/fitlog/fitlog-cli/internal/repo"
	"github.com/fitlog/fitlog-cli/internal/store"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func withStore(run func(*store.Store) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	st, err := store.Open(path, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	return run(st)
}

func withRepo(run func(*repo.Repo) error) error {
	return withStore(func(st *store.Store) error {
		return run(repo.New(st))
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseDateTimeOrNow resolves --date/--time flags, defaulting to now when
// both are empty.
func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time %q %q (expected YYYY-MM-DD HH:MM)", date, timeStr)
	}
	return t, nil
}

func optionalInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func optionalFloat(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func formatStamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
