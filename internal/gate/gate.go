// Package gate derives the UI shell's two pre-render signals from the
// profile stream: whether the user has onboarded, and the preferred
// theme. Both are tri-state so the shell can tell "still loading" apart
// from a real answer.
package gate

import (
	"context"

	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

// State is the onboarding signal. It starts at StateUnknown until the
// profile view emits for the first time; after that it is Onboarded iff a
// profile exists. Onboarded can fall back to NotOnboarded only through a
// data reset.
type State int

const (
	StateUnknown State = iota
	StateNotOnboarded
	StateOnboarded
)

func (s State) String() string {
	switch s {
	case StateNotOnboarded:
		return "not-onboarded"
	case StateOnboarded:
		return "onboarded"
	default:
		return "unknown"
	}
}

type Gate struct {
	repo *repo.Repo
}

func New(r *repo.Repo) *Gate {
	return &Gate{repo: r}
}

// Watch emits the onboarding state, live. The first emission arrives as
// soon as the profile table has been read once, so subscribers never see
// StateUnknown from this subscription itself; StateUnknown is what a
// caller holds before subscribing.
func (g *Gate) Watch(ctx context.Context) *live.Subscription[State] {
	return live.Transform(g.repo.WatchProfile(ctx), func(p *model.Profile) State {
		if p == nil {
			return StateNotOnboarded
		}
		return StateOnboarded
	})
}

// IsOnboarded answers once, without a subscription.
func (g *Gate) IsOnboarded() (bool, error) {
	p, err := g.repo.Profile()
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// WatchDarkMode emits the stored theme preference, live. nil means
// "follow the system setting": either no profile exists or the profile
// never chose.
func (g *Gate) WatchDarkMode(ctx context.Context) *live.Subscription[*bool] {
	return live.Transform(g.repo.WatchProfile(ctx), func(p *model.Profile) *bool {
		if p == nil {
			return nil
		}
		return p.DarkMode
	})
}

// PreferredDarkMode answers once, without a subscription.
func (g *Gate) PreferredDarkMode() (*bool, error) {
	p, err := g.repo.Profile()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return p.DarkMode, nil
}
