package radix

import (
	"sync"

	"github.com/pkg/errors"
)

type InMemoryAuthStore struct {
	values map[string]string
	mu     sync.RWMutex
}

var _ AuthStore = &InMemoryAuthStore{}

func NewInMemoryAuthStore() *InMemoryAuthStore {
	return &InMemoryAuthStore{values: make(map[string]string)}
}

func (s *InMemoryAuthStore) Put(key, value string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return
}

func (s *InMemoryAuthStore) Get(key string) (value string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		err = errors.Wrapf(ErrTokenNotFound, "no value stored for key %s", key)
	}

	return
}

func (s *InMemoryAuthStore) Delete(key string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return
}

func (s *InMemoryAuthStore) Close() (err error) {
	return
}
