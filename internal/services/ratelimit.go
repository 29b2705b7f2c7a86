package services

import (
	"sync"
	"time"
)

// RateLimiter admits requests per client with a sliding-window counter.
// Expired timestamps are pruned lazily on each check; nothing is persisted
// across restarts.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu  sync.Mutex
	log map[string][]time.Time

	// now is swappable for tests.
	now func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		log:    make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether the client may proceed, recording the call when
// admitted. The call is rejected when the trailing window already holds the
// configured number of requests.
func (rl *RateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	queue := rl.log[clientID]

	pruned := queue[:0]
	for _, ts := range queue {
		if now.Sub(ts) <= rl.window {
			pruned = append(pruned, ts)
		}
	}

	if len(pruned) >= rl.limit {
		rl.log[clientID] = pruned
		return false
	}

	rl.log[clientID] = append(pruned, now)
	return true
}
