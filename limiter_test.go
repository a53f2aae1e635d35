package devopsdecoded

import (
	"testing"
	"time"
)

func TestViewLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewViewLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first view to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second view to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third view to be blocked")
	}
}

func TestViewLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewViewLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first view to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second view to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected view after window to be allowed")
	}
}

func TestViewLimiterIsPerIP(t *testing.T) {
	limiter := NewViewLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestViewLimiterStopTwice(t *testing.T) {
	limiter := NewViewLimiter(1, time.Second)
	limiter.Stop()
	limiter.Stop()
}
