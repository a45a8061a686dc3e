// Package ratelimit serializes outbound ratings-service requests to a
// fixed minimum interval.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter spaces requests at least minInterval apart by sleeping callers
// that arrive too early. The interval check and the timestamp update are
// separate critical sections with the wait in between, so the limiter is
// advisory under concurrency: two callers that read the same stale
// timestamp may fire together. That mirrors the upstream behavior; the
// mutex only keeps the timestamp itself race-free.
type Limiter struct {
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a limiter allowing requestsPerSecond outbound calls.
// Non-positive rates fall back to one request per second.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Limiter{
		minInterval: time.Duration(float64(time.Second) / requestsPerSecond),
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Acquire blocks until at least minInterval has passed since the last
// recorded request, then records the current time. Call it immediately
// before every outbound ratings-service request.
func (l *Limiter) Acquire() {
	l.mu.Lock()
	elapsed := l.now().Sub(l.lastRequest)
	l.mu.Unlock()

	if elapsed < l.minInterval {
		l.sleep(l.minInterval - elapsed)
	}

	l.mu.Lock()
	l.lastRequest = l.now()
	l.mu.Unlock()
}
