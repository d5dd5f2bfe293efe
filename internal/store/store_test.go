package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

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

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.Local)
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while waiting for an emission")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for an emission")
	}
	panic("unreachable")
}

func waitClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for channel close")
		}
	}
}

// recvUntil drains emissions until ok accepts one, then returns it.
func recvUntil[T any](t *testing.T, ch <-chan T, ok func(T) bool) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, chOk := <-ch:
			if !chOk {
				t.Fatalf("channel closed while waiting for a matching emission")
			}
			if ok(v) {
				return v
			}
		case <-deadline:
			t.Fatalf("timed out waiting for a matching emission")
		}
	}
}

func TestConcurrentWritersAreSerialized(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				e := model.WeightEntry{WeightKg: 80, OccurredAt: at(1+w, 8)}
				if _, err := st.InsertWeight(e); err != nil {
					t.Errorf("writer %d insert %d: %v", w, i, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	n, err := st.CountWeights()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != writers*perWriter {
		t.Fatalf("count = %d, want %d", n, writers*perWriter)
	}
}

func TestConcurrentWritersVisibleToSubscriber(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	sub := st.WatchWeights(context.Background())
	defer sub.Cancel()

	const total = 30
	var wg sync.WaitGroup
	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < total/3; i++ {
				if _, err := st.InsertWeight(model.WeightEntry{WeightKg: 80, OccurredAt: at(1+w, 9)}); err != nil {
					t.Errorf("insert: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	final := recvUntil(t, sub.Updates(), func(s []model.WeightEntry) bool { return len(s) == total })
	if len(final) != total {
		t.Fatalf("final snapshot has %d entries, want %d", len(final), total)
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	t.Parallel()
	st, err := store.Open(filepath.Join(t.TempDir(), "fitlog.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	sub := st.WatchWeights(context.Background())
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	waitClosed(t, sub.Updates())
	if err := sub.Err(); err != nil {
		t.Fatalf("clean shutdown reported error: %v", err)
	}
}
