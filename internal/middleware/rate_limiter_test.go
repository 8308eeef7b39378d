package middleware

import (
	"testing"
	"time"
)

func TestIPRateLimiterAllowsWithinBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 3, time.Hour)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("request beyond burst should be denied")
	}
}

func TestIPRateLimiterIsolatesKeys(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 1, time.Hour)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("second key should have its own budget")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("first key should be exhausted")
	}
}

func TestIPRateLimiterEmptyKey(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 1, time.Hour)

	if !limiter.Allow("") {
		t.Fatal("empty key should fall back to a shared bucket")
	}
	if limiter.Allow("") {
		t.Fatal("shared bucket should be exhausted")
	}
}
