package radix

import "sync"

// Limiter bounds the number of concurrently running functions. Submitting
// more work than the capacity blocks the submitter until a slot frees, which
// queues excess work in submission order. Queued work is never cancelled.
//
// Engine methods create a fresh Limiter per top level call rather than
// sharing one across the client, so the ceiling applies per call, not
// globally.
type Limiter struct {
	slots chan struct{}
	wg    sync.WaitGroup
}

func NewLimiter(capacity int) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{slots: make(chan struct{}, capacity)}
}

// Go blocks until a slot is free, then runs fn on its own goroutine.
func (l *Limiter) Go(fn func()) {
	l.slots <- struct{}{}
	l.wg.Add(1)
	go func() {
		defer func() {
			<-l.slots
			l.wg.Done()
		}()
		fn()
	}()
}

// Wait blocks until every submitted function has returned.
func (l *Limiter) Wait() {
	l.wg.Wait()
}
