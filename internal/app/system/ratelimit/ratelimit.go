// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

const (
	ipWindow      = time.Minute
	failureWindow = 5 * time.Minute
)

// LoginLimiter throttles POST /login with two sliding windows:
//   - every attempt counts against the client IP for ipWindow;
//   - only failed attempts count against the account email for
//     failureWindow, and a successful sign-in clears them.
//
// Safe for concurrent use. Close stops the background sweep.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time // by client IP
	failures map[string][]time.Time // by normalized email

	perIP      int
	perAccount int
	now        func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter allows perIP attempts per minute per IP and
// max(perIP/2, 1) failed attempts per five minutes per account.
func NewLoginLimiter(perIP int) *LoginLimiter {
	if perIP < 1 {
		perIP = 10
	}
	perAccount := perIP / 2
	if perAccount < 1 {
		perAccount = 1
	}
	ll := &LoginLimiter{
		attempts:   make(map[string][]time.Time),
		failures:   make(map[string][]time.Time),
		perIP:      perIP,
		perAccount: perAccount,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	go ll.sweep(ipWindow)
	return ll
}

// Check records an attempt from r's client IP and reports whether the
// attempt may proceed. When it may not, reason is safe to show the caller
// and retryAfter is how long until the oldest counted attempt ages out.
func (ll *LoginLimiter) Check(r *http.Request, email string) (ok bool, reason string, retryAfter time.Duration) {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	now := ll.now()
	ip := ClientIP(r)
	seen := recent(ll.attempts[ip], now, ipWindow)
	if len(seen) >= ll.perIP {
		ll.attempts[ip] = seen
		return false, "Too many login attempts. Please wait a minute before trying again.",
			seen[0].Add(ipWindow).Sub(now)
	}
	ll.attempts[ip] = append(seen, now)

	key := emailKey(email)
	if key == "" {
		return true, "", 0
	}
	failed := recent(ll.failures[key], now, failureWindow)
	if len(failed) == 0 {
		delete(ll.failures, key)
		return true, "", 0
	}
	ll.failures[key] = failed
	if len(failed) >= ll.perAccount {
		return false, "Too many failed login attempts for this account. Please wait a few minutes.",
			failed[0].Add(failureWindow).Sub(now)
	}
	return true, "", 0
}

// RecordFailure counts a wrong password or unknown email against the account.
func (ll *LoginLimiter) RecordFailure(email string) {
	key := emailKey(email)
	if key == "" {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()
	now := ll.now()
	ll.failures[key] = append(recent(ll.failures[key], now, failureWindow), now)
}

// ResetEmail clears the account's failures after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(email string) {
	if key := emailKey(email); key != "" {
		ll.mu.Lock()
		delete(ll.failures, key)
		ll.mu.Unlock()
	}
}

// Close stops the sweep goroutine.
func (ll *LoginLimiter) Close() {
	ll.stopOnce.Do(func() { close(ll.stop) })
}

func (ll *LoginLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ll.stop:
			return
		case <-ticker.C:
			ll.prune()
		}
	}
}

// prune drops keys whose windows hold no live entries.
func (ll *LoginLimiter) prune() {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	now := ll.now()
	for ip, ts := range ll.attempts {
		if ts = recent(ts, now, ipWindow); len(ts) == 0 {
			delete(ll.attempts, ip)
		} else {
			ll.attempts[ip] = ts
		}
	}
	for key, ts := range ll.failures {
		if ts = recent(ts, now, failureWindow); len(ts) == 0 {
			delete(ll.failures, key)
		} else {
			ll.failures[key] = ts
		}
	}
}

// recent returns the suffix of ts (oldest first) still inside window.
func recent(ts []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
