package radix

import (
	"sync"
	"sync/atomic"
)

// PubSubQueue fans messages out to subscribers. Each subscriber receives on
// its own buffered channel and runs its callback on its own goroutine, so one
// slow subscriber cannot stall the publisher or its peers.
type PubSubQueue[T any] interface {
	On(callback func(message T)) (cleanup func())
	Broadcast(message T)
	Close()
}

type subscriber[T any] struct {
	messages chan T
	callback func(message T)
}

type queue[T any] struct {
	subscribers map[int]*subscriber[T]
	nextId      int
	mu          sync.Mutex
	closed      atomic.Bool
}

func NewQueue[T any]() PubSubQueue[T] {
	return &queue[T]{subscribers: make(map[int]*subscriber[T])}
}

func (q *queue[T]) On(callback func(message T)) (cleanup func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed.Load() {
		return func() {}
	}

	id := q.nextId
	q.nextId++

	sub := &subscriber[T]{
		messages: make(chan T, 100),
		callback: callback,
	}
	q.subscribers[id] = sub

	go func() {
		for message := range sub.messages {
			sub.callback(message)
		}
	}()

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if s, exists := q.subscribers[id]; exists {
			delete(q.subscribers, id)
			close(s.messages)
		}
	}
}

func (q *queue[T]) Broadcast(message T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed.Load() {
		return
	}

	for _, sub := range q.subscribers {
		select {
		case sub.messages <- message:
		default:
			// Subscriber buffer full; deliver on a throwaway goroutine
			// rather than dropping or blocking the publisher.
			go sub.callback(message)
		}
	}
}

func (q *queue[T]) Close() {
	if q.closed.Swap(true) {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, sub := range q.subscribers {
		close(sub.messages)
	}
	q.subscribers = make(map[int]*subscriber[T])
}
