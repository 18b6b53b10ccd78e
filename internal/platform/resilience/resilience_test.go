package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBreakerTransitions(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker must allow: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("one failure below threshold, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after threshold, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("open breaker must reject: %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe must pass: %v", err)
	}
	b.RecordSuccess()
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after probe success, got %s", state)
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe must pass: %v", err)
	}
	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatal("failed probe must reopen the breaker")
	}
}

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32

	release := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]any, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err, _ := g.Do("scoreboard", func() (any, error) {
				calls.Add(1)
				<-release
				return "payload", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = value
		}(i)
	}

	// All goroutines are queued behind one flight before it completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream call, got %d", got)
	}
	for _, value := range results {
		if value != "payload" {
			t.Fatalf("caller missed shared result: %v", value)
		}
	}
}
