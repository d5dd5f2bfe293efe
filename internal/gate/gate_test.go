package gate_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitlog/fitlog-cli/internal/gate"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
	"github.com/fitlog/fitlog-cli/internal/store"
)

func newTestGate(t *testing.T) (*gate.Gate, *repo.Repo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "fitlog.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	r := repo.New(st)
	return gate.New(r), r
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

func onboarding() model.Profile {
	return model.Profile{StartWeightKg: 92, CurrentWeightKg: 92, TargetWeightKg: 80}
}

func TestWatchStateTransitions(t *testing.T) {
	t.Parallel()
	g, r := newTestGate(t)

	sub := g.Watch(context.Background())
	defer sub.Cancel()

	if s := recv(t, sub.Updates()); s != gate.StateNotOnboarded {
		t.Fatalf("initial state = %v, want not-onboarded", s)
	}

	if _, err := r.CompleteOnboarding(onboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if s := recv(t, sub.Updates()); s != gate.StateOnboarded {
		t.Fatalf("state after onboarding = %v, want onboarded", s)
	}

	if err := r.ResetData(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s := recv(t, sub.Updates()); s != gate.StateNotOnboarded {
		t.Fatalf("state after reset = %v, want not-onboarded", s)
	}
}

func TestIsOnboarded(t *testing.T) {
	t.Parallel()
	g, r := newTestGate(t)

	ok, err := g.IsOnboarded()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatalf("onboarded before any profile exists")
	}

	if _, err := r.CompleteOnboarding(onboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	ok, err = g.IsOnboarded()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatalf("not onboarded after profile write")
	}
}

func TestWatchDarkMode(t *testing.T) {
	t.Parallel()
	g, r := newTestGate(t)

	sub := g.WatchDarkMode(context.Background())
	defer sub.Cancel()

	// No profile: follow the system.
	if v := recv(t, sub.Updates()); v != nil {
		t.Fatalf("initial preference = %v, want nil", *v)
	}

	p := onboarding()
	if _, err := r.UpsertProfile(p); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Profile exists but never chose: still follow the system.
	if v := recv(t, sub.Updates()); v != nil {
		t.Fatalf("preference = %v, want nil", *v)
	}

	dark := true
	p.DarkMode = &dark
	if _, err := r.UpsertProfile(p); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	v := recv(t, sub.Updates())
	if v == nil || !*v {
		t.Fatalf("preference = %v, want true", v)
	}
}

func TestPreferredDarkMode(t *testing.T) {
	t.Parallel()
	g, r := newTestGate(t)

	v, err := g.PreferredDarkMode()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != nil {
		t.Fatalf("preference = %v, want nil before onboarding", *v)
	}

	p := onboarding()
	light := false
	p.DarkMode = &light
	if _, err := r.UpsertProfile(p); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	v, err = g.PreferredDarkMode()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v == nil || *v {
		t.Fatalf("preference = %v, want false", v)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()
	cases := map[gate.State]string{
		gate.StateUnknown:      "unknown",
		gate.StateNotOnboarded: "not-onboarded",
		gate.StateOnboarded:    "onboarded",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
