package radix

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLimiterCeiling(t *testing.T) {
	const capacity = 3
	const jobs = 20

	limiter := NewLimiter(capacity)

	var inFlight, peak, ran int64

	for i := 0; i < jobs; i++ {
		limiter.Go(func() {
			current := atomic.AddInt64(&inFlight, 1)
			for {
				observed := atomic.LoadInt64(&peak)
				if current <= observed || atomic.CompareAndSwapInt64(&peak, observed, current) {
					break
				}
			}

			time.Sleep(time.Millisecond * 5)

			atomic.AddInt64(&inFlight, -1)
			atomic.AddInt64(&ran, 1)
		})
	}

	limiter.Wait()

	if ran != jobs {
		t.Fatalf("expected all %d jobs to run, got %d", jobs, ran)
	}
	if peak > capacity {
		t.Fatalf("in-flight ceiling exceeded: peak %d with capacity %d", peak, capacity)
	}
}

func TestLimiterMinimumCapacity(t *testing.T) {
	limiter := NewLimiter(0)

	done := false
	limiter.Go(func() { done = true })
	limiter.Wait()

	if !done {
		t.Fatal("expected the job to run under a coerced capacity of 1")
	}
}
