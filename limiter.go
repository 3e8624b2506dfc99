package folioedge

import (
	"sync"
	"time"
)

const loginWindow = time.Minute

// ipLimiter is a sliding-window per-IP rate limiter for login attempts.
type ipLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func newIPLimiter(max int, window time.Duration) *ipLimiter {
	l := &ipLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Stop ends the background sweep. Allow keeps working after Stop; it prunes
// stale entries itself on every call. Safe to call more than once.
func (l *ipLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Allow reports whether ip may attempt again, recording the attempt if so.
func (l *ipLimiter) Allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := pruneBefore(l.hits[ip], cutoff)
	if len(recent) >= l.max {
		l.hits[ip] = recent
		return false
	}
	l.hits[ip] = append(recent, now)
	return true
}

// sweep periodically drops IPs whose attempts have all aged out, so the map
// does not grow with every IP that ever tried to log in.
func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			recent := pruneBefore(hits, cutoff)
			if len(recent) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = recent
			}
		}
		l.mu.Unlock()
	}
}

func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
