package analyzer

import (
	"sync"

	"golang.org/x/time/rate"
)

// UserLimiter enforces the per-user analysis budget (default 3 per minute).
type UserLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewUserLimiter builds a limiter allowing perMinute analyses per user.
func NewUserLimiter(perMinute int) *UserLimiter {
	if perMinute <= 0 {
		perMinute = 3
	}
	return &UserLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
	}
}

// Allow reports whether the user may run another analysis right now.
func (l *UserLimiter) Allow(userID string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
