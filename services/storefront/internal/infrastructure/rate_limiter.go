package infrastructure

import (
	"sync"
	"time"
)

// RateLimiter is a sliding-window limiter keyed by caller (session id or IP).
type RateLimiter struct {
	requests map[string][]time.Time
	window   time.Duration
	limit    int
	mutex    sync.Mutex
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		window:   window,
		limit:    limit,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	go rl.cleanupStaleEntries(window)
	return rl
}

// Allow records a request for key and reports whether it fits in the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	valid := pruneBefore(rl.requests[key], now.Add(-rl.window))

	if len(valid) < rl.limit {
		rl.requests[key] = append(valid, now)
		return true
	}

	rl.requests[key] = valid
	return false
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupStaleEntries(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, requests := range rl.requests {
		valid := pruneBefore(requests, cutoff)
		if len(valid) == 0 {
			delete(rl.requests, key)
			continue
		}
		rl.requests[key] = valid
	}
}

// pruneBefore drops timestamps at or before cutoff. Timestamps are appended in order.
func pruneBefore(requests []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(requests) && !requests[i].After(cutoff) {
		i++
	}
	return requests[i:]
}
