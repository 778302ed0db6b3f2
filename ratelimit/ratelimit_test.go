package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowUnlimited(t *testing.T) {
	l := New()
	for i := 0; i < 100; i++ {
		if !l.Allow("example.com", 0) {
			t.Fatal("rate 0 should always allow")
		}
	}
}

func TestAllowRateLimited(t *testing.T) {
	l := New()

	// Burst of `rate` tokens, then denial.
	rate := 2
	allowed := 0
	for i := 0; i < 10; i++ {
		if l.Allow("example.com", rate) {
			allowed++
		}
	}

	if allowed != rate {
		t.Fatalf("expected %d allowed, got %d", rate, allowed)
	}
}

func TestAllowPerHostIsolation(t *testing.T) {
	l := New()

	for i := 0; i < 2; i++ {
		l.Allow("a.example.com", 1)
	}

	if !l.Allow("b.example.com", 1) {
		t.Fatal("limits should be tracked per host")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()

	rate := 10
	for l.Allow("example.com", rate) {
		// Drain the bucket.
	}

	time.Sleep(150 * time.Millisecond)

	if !l.Allow("example.com", rate) {
		t.Fatal("bucket should refill over time")
	}
}

func TestWaitUnlimited(t *testing.T) {
	l := New()

	if err := l.Wait(context.Background(), "example.com", 0); err != nil {
		t.Fatalf("wait with rate 0: %v", err)
	}
}

func TestWaitCancelled(t *testing.T) {
	l := New()

	// Drain the bucket first.
	for l.Allow("example.com", 1) {
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "example.com", 1)
	if err == nil {
		// The bucket may have refilled during the wait window; drain and retry once.
		for l.Allow("example.com", 1) {
		}
		err = l.Wait(ctx, "example.com", 1)
	}
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestReset(t *testing.T) {
	l := New()

	for l.Allow("example.com", 1) {
	}
	l.Reset("example.com")

	if !l.Allow("example.com", 1) {
		t.Fatal("reset should restore a full bucket")
	}
}
