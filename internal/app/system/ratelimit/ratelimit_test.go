package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, perIP int) (*LoginLimiter, *time.Time) {
	t.Helper()
	ll := NewLoginLimiter(perIP)
	t.Cleanup(ll.Close)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ll.now = func() time.Time { return now }
	return ll, &now
}

func loginFrom(ip string) *http.Request {
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = ip + ":4000"
	return r
}

func TestLoginLimiter_PerIPSlidingWindow(t *testing.T) {
	ll, now := newTestLimiter(t, 2)

	if ok, _, _ := ll.Check(loginFrom("10.0.0.1"), "a@x.com"); !ok {
		t.Fatal("first attempt should be allowed")
	}
	*now = now.Add(30 * time.Second)
	if ok, _, _ := ll.Check(loginFrom("10.0.0.1"), "b@x.com"); !ok {
		t.Fatal("second attempt should be allowed")
	}
	ok, reason, retry := ll.Check(loginFrom("10.0.0.1"), "c@x.com")
	if ok || reason == "" {
		t.Fatal("third attempt within a minute should be limited")
	}
	if retry != 30*time.Second {
		t.Errorf("retryAfter = %v, want 30s", retry)
	}
	if ok, _, _ := ll.Check(loginFrom("10.0.0.2"), "a@x.com"); !ok {
		t.Error("other IPs have their own window")
	}

	// The first attempt ages out; the second still counts.
	*now = now.Add(31 * time.Second)
	if ok, _, _ := ll.Check(loginFrom("10.0.0.1"), "d@x.com"); !ok {
		t.Error("oldest attempt should have left the window")
	}
	if ok, _, _ := ll.Check(loginFrom("10.0.0.1"), "e@x.com"); ok {
		t.Error("window should be full again")
	}
}

func TestLoginLimiter_OnlyFailuresCountAgainstAccount(t *testing.T) {
	ll, now := newTestLimiter(t, 100) // 50 failures per account

	for i := 0; i < 60; i++ {
		if ok, _, _ := ll.Check(loginFrom("10.0.0.1"), "donor@example.com"); !ok {
			t.Fatalf("attempt %d without failures should be allowed", i+1)
		}
	}

	for i := 0; i < 50; i++ {
		ll.RecordFailure("Donor@Example.com ")
	}
	ok, reason, retry := ll.Check(loginFrom("10.0.0.9"), "donor@example.com")
	if ok || reason == "" {
		t.Fatal("expected account limit with normalized key")
	}
	if retry != 5*time.Minute {
		t.Errorf("retryAfter = %v, want 5m", retry)
	}

	ll.ResetEmail("DONOR@example.com")
	if ok, _, _ := ll.Check(loginFrom("10.0.0.9"), "donor@example.com"); !ok {
		t.Error("ResetEmail should clear the account failures")
	}

	ll.RecordFailure("other@example.com")
	*now = now.Add(5*time.Minute + time.Second)
	ll.prune()
	if _, ok := ll.failures["other@example.com"]; ok {
		t.Error("expired failures should be pruned")
	}
	if len(ll.attempts) != 0 {
		t.Errorf("expired attempts should be pruned, have %d keys", len(ll.attempts))
	}
}

func TestLoginLimiter_EmptyEmailSkipsAccountCheck(t *testing.T) {
	ll, _ := newTestLimiter(t, 2)
	ll.RecordFailure("  ")
	if ok, _, _ := ll.Check(loginFrom("10.0.0.1"), ""); !ok {
		t.Error("empty email should only be limited by IP")
	}
	if len(ll.failures) != 0 {
		t.Error("empty email should not be recorded")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.2.3.4:5", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.9 "}, "1.2.3.4:5", "10.0.0.9"},
		{"remote addr", nil, "1.2.3.4:5678", "1.2.3.4"},
		{"remote addr without port", nil, "1.2.3.4", "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/login", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
