package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	handler := RateLimit(2, 1)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:4242"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4242"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status after burst = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimitIsolatesClients(t *testing.T) {
	handler := RateLimit(1, 1)(okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4242"
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first client: status = %d, want %d", first.Code, http.StatusOK)
	}

	other := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	handler.ServeHTTP(other, req)
	if other.Code != http.StatusOK {
		t.Fatalf("second client: status = %d, want %d", other.Code, http.StatusOK)
	}
}

// Constructing the middleware must not start background work that outlives it.
func TestRateLimitSpawnsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	for i := 0; i < 50; i++ {
		RateLimit(10, 5)(okHandler())
	}

	after := runtime.NumGoroutine()
	if after > before {
		t.Fatalf("goroutines grew from %d to %d after constructing limiters", before, after)
	}
}
