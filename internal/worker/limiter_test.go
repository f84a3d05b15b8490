package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("https://example.com/a") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("https://example.com/b") {
		t.Error("second request should fit the burst")
	}
	if limiter.Allow("https://example.com/c") {
		t.Error("third request should exceed the burst")
	}
}

func TestLimiterIsPerDomain(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://one.example.com/") {
		t.Error("first domain should be allowed")
	}
	if !limiter.Allow("https://two.example.com/") {
		t.Error("second domain has its own budget")
	}
	if limiter.Allow("https://one.example.com/") {
		t.Error("first domain budget should be spent")
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	if err := limiter.Wait(context.Background(), "https://example.com/"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "https://example.com/"); err == nil {
		t.Error("expected context deadline to interrupt the wait")
	}
}

func TestLimiterSetDomainRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetDomainRate("slow.example.com", 0.001, 1)

	if !limiter.Allow("https://slow.example.com/") {
		t.Error("burst of one should be allowed")
	}
	if limiter.Allow("https://slow.example.com/") {
		t.Error("custom rate should block the second request")
	}
}

func TestLimiterRejectsBadURL(t *testing.T) {
	limiter := NewLimiter(1, 1)
	if limiter.Allow("://not-a-url") {
		t.Error("unparseable URL should not be allowed")
	}
}
