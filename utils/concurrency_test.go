package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeySetNoDuplicates(t *testing.T) {
	s := NewKeySet()

	if !s.Add("HAHA-100") {
		t.Error("first Add should return true")
	}
	if s.Add("HAHA-100") {
		t.Error("second Add of same key should return false")
	}
	if !s.Contains("HAHA-100") || s.Contains("HAHA-200") {
		t.Error("Contains reports wrong membership")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestKeySetConcurrency(t *testing.T) {
	s := NewKeySet()
	var added int64

	pool := NewWorkerPool(10, 0)
	for i := 0; i < 100; i++ {
		pool.Submit(func() {
			if s.Add("BOX-1") {
				atomic.AddInt64(&added, 1)
			}
		})
	}
	pool.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 50
	pool := NewWorkerPool(1, rateLimitMs)

	var mu sync.Mutex
	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		pool.Submit(func() {
			mu.Lock()
			timestamps = append(timestamps, time.Now())
			mu.Unlock()
		})
	}
	pool.Wait()

	if len(timestamps) != 3 {
		t.Fatalf("ran %d jobs, want 3", len(timestamps))
	}
	// Jobs are stamped a moment after their slot opens, so allow a little slack.
	floor := time.Duration(rateLimitMs)*time.Millisecond - 5*time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		if gap := timestamps[i].Sub(timestamps[i-1]); gap < floor {
			t.Errorf("gap between job %d and %d: %v < minimum %v", i-1, i, gap, floor)
		}
	}
}

func TestWorkerPoolZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0, 0)
	var ran int64
	pool.Submit(func() { atomic.AddInt64(&ran, 1) })
	pool.Wait()
	if ran != 1 {
		t.Errorf("job did not run with a zero-sized pool")
	}
}
