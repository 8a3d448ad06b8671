package handlers

import (
	"sync"
	"time"
)

// Limiter decides whether a request from the given client identifier may
// proceed. The auth flow only sees this interface, so the in-process
// implementation can be swapped for a shared counter later.
type Limiter interface {
	Allow(id string) bool
}

// FixedWindowLimiter tracks request timestamps per client id and rejects once
// the limit is reached inside the window. State lives in this process only;
// multiple server instances do not share counts.
type FixedWindowLimiter struct {
	mutex  sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
	}
}

func (l *FixedWindowLimiter) Allow(id string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	kept := l.hits[id][:0]
	for _, t := range l.hits[id] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.hits[id] = kept
		return false
	}
	l.hits[id] = append(kept, now)
	return true
}
