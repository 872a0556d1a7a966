package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"stockfeed/internal/httpx"
)

// MinInterval spaces request starts at least Interval apart. Each caller
// reserves the next free slot, so concurrent callers queue instead of
// passing the gate together. A canceled context releases the caller but
// not its slot.
type MinInterval struct {
	D        httpx.Doer
	Interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func (m *MinInterval) Do(req *http.Request) (*http.Response, error) {
	if m.Interval > 0 {
		m.mu.Lock()
		now := time.Now()
		slot := m.next
		if slot.Before(now) {
			slot = now
		}
		m.next = slot.Add(m.Interval)
		m.mu.Unlock()

		if wait := time.Until(slot); wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-t.C:
			}
		}
	}
	return m.D.Do(req)
}

// Wrap puts d behind a pacing gate. A positive requestsPerMinute selects a
// token bucket with the given burst; otherwise a positive minInterval
// selects MinInterval; otherwise d is returned unchanged. The gate only
// delays requests. It never inspects responses or retries.
func Wrap(d httpx.Doer, requestsPerMinute, burst int, minInterval time.Duration) httpx.Doer {
	switch {
	case requestsPerMinute > 0:
		if burst <= 0 {
			burst = 1
		}
		return &TokenBucketDoer{D: d, TB: NewTokenBucket(float64(requestsPerMinute)/60.0, burst)}
	case minInterval > 0:
		return &MinInterval{D: d, Interval: minInterval}
	default:
		return d
	}
}
