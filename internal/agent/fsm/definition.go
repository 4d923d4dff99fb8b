package fsm

import (
	"time"

	"github.com/noura-assistant/server/internal/agent/model"
)

// TimeoutPolicy describes what happens to a session idle in a state.
type TimeoutPolicy struct {
	After time.Duration
	Next  model.State
}

// Definition is the static state-machine configuration: the initial state
// and the per-state idle timeout table. Loaded once at process start and
// read-only thereafter; inject alternates in tests.
type Definition struct {
	Initial  model.State
	Timeouts map[model.State]TimeoutPolicy
}

// DefaultDefinition returns the canonical timeout table.
func DefaultDefinition() *Definition {
	return &Definition{
		Initial: model.StateInit,
		Timeouts: map[model.State]TimeoutPolicy{
			model.StateAwaitingCountry: {After: 7 * 24 * time.Hour, Next: model.StateInit},
			model.StateReady:           {After: 24 * time.Hour, Next: model.StateInit},
			model.StateAnalyzing:       {After: 30 * time.Second, Next: model.StateError},
			model.StateResultsShown:    {After: 5 * time.Minute, Next: model.StateReady},
			model.StateCategoryResults: {After: 5 * time.Minute, Next: model.StateReady},
			model.StateAwaitingFilter:  {After: 2 * time.Minute, Next: model.StateResultsShown},
			model.StateError:           {After: 10 * time.Second, Next: model.StateReady},
		},
	}
}

// maxNormalizeHops bounds chained timeout resets (ANALYZING -> ERROR -> READY).
const maxNormalizeHops = 3

// Normalize applies the session freshness check once per request at load
// time: an idle session is reset along the timeout table, chaining at most a
// few hops, and every downstream component sees an already-normalized state.
func (d *Definition) Normalize(session *model.Session, now time.Time) *model.Session {
	if session == nil {
		return nil
	}
	for i := 0; i < maxNormalizeHops; i++ {
		policy, ok := d.Timeouts[session.State]
		if !ok || policy.After <= 0 {
			return session
		}
		idle := now.Sub(session.LastActivityAt)
		if idle <= policy.After {
			return session
		}
		if policy.Next == session.State {
			return session
		}
		session.State = policy.Next
		// the reset consumes the idle period measured against the old state
		session.LastActivityAt = session.LastActivityAt.Add(policy.After)
	}
	return session
}
