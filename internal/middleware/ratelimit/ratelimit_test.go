package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(limit int) (*Limiter, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(Config{RequestsPerMinute: limit})
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_Allow(t *testing.T) {
	l, now := newTestLimiter(3)

	for i := 0; i < 3; i++ {
		if !l.Allow("a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("a") {
		t.Fatal("4th request within the window should be refused")
	}
	if !l.Allow("b") {
		t.Fatal("other clients have their own window")
	}
	if got := l.RetryAfter("a"); got != time.Minute {
		t.Errorf("RetryAfter = %v, want 1m", got)
	}

	*now = now.Add(time.Minute)
	if !l.Allow("a") {
		t.Fatal("window should have reset")
	}
	if l.Rejected() != 1 {
		t.Errorf("Rejected() = %d, want 1", l.Rejected())
	}
}

func TestLimiter_Prune(t *testing.T) {
	l, now := newTestLimiter(1)
	l.Allow("old")
	*now = now.Add(90 * time.Second)
	l.Allow("fresh")
	*now = now.Add(45 * time.Second)

	if n := l.Prune(); n != 1 {
		t.Fatalf("Prune() = %d, want 1", n)
	}
	if l.ActiveClients() != 1 {
		t.Errorf("ActiveClients() = %d, want 1", l.ActiveClients())
	}
}

func TestLimiter_MiddlewareOnlyLimitsWrites(t *testing.T) {
	l, _ := newTestLimiter(1)
	h := l.Middleware(
		func(*http.Request) string { return "1.2.3.4" },
		nil,
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/api/expenses", nil))
		return rec
	}

	if rec := do(http.MethodPost); rec.Code != http.StatusNoContent {
		t.Fatalf("first POST: status %d", rec.Code)
	}
	rec := do(http.MethodPost)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
	}
	for i := 0; i < 5; i++ {
		if rec := do(http.MethodGet); rec.Code != http.StatusNoContent {
			t.Fatalf("GET should never be limited, got %d", rec.Code)
		}
	}
}
