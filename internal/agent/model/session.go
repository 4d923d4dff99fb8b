package model

import (
	"context"
	"time"
)

// State identifies the conversation phase of a session.
type State string

const (
	StateInit            State = "INIT"
	StateAwaitingCountry State = "AWAITING_COUNTRY"
	StateReady           State = "READY"
	StateAnalyzing       State = "ANALYZING"
	StateResultsShown    State = "RESULTS_SHOWN"
	StateCategoryResults State = "CATEGORY_RESULTS"
	StateAwaitingFilter  State = "AWAITING_FILTER"
	StateError           State = "ERROR"
)

// Session is the per-user conversation context. State, country and the cached
// last analysis are persisted under separate keys with independent TTLs; the
// repository assembles them on load.
type Session struct {
	UserID         string    `json:"user_id"`
	State          State     `json:"state"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Country        string    `json:"country,omitempty"`
	Language       string    `json:"language,omitempty"`
}

// NewSession returns a fresh session in the initial state.
func NewSession(userID string) *Session {
	return &Session{
		UserID:         userID,
		State:          StateInit,
		LastActivityAt: time.Now().UTC(),
	}
}

// TraceEntry is one audit record of a session action.
type TraceEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
}

// SessionRepository persists sessions with per-field TTL semantics.
type SessionRepository interface {
	// LoadSession returns the stored session for the user, or nil when none exists.
	LoadSession(ctx context.Context, userID string) (*Session, error)

	// SaveState persists the session state and activity timestamp.
	SaveState(ctx context.Context, session *Session) error

	// SaveCountry persists the user country under its own longer TTL.
	SaveCountry(ctx context.Context, userID, country string) error

	// LoadAnalysis returns the cached last analysis, or nil when absent or expired.
	LoadAnalysis(ctx context.Context, userID string) (*Analysis, error)

	// SaveAnalysis caches the most recent analysis under its own shorter TTL.
	SaveAnalysis(ctx context.Context, userID string, analysis *Analysis) error

	// AppendTrace records an audit entry for the user.
	AppendTrace(ctx context.Context, userID string, entry TraceEntry) error
}
