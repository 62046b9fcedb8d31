package testutil

import (
	"errors"
	"sync"
)

// GatedStore is an in-memory store double for progress and preference tests.
// When Gate is set, every Set blocks until a value is received from it,
// simulating a slow storage backend so tests can exercise writes that are
// still pending when playback state has moved on. When FailWrites is true,
// Set returns an error without storing anything.
type GatedStore struct {
	Gate       chan struct{}
	FailWrites bool

	mu     sync.Mutex
	data   map[string][]byte
	writes []string
}

// NewGatedStore creates an empty GatedStore with no gate installed.
func NewGatedStore() *GatedStore {
	return &GatedStore{data: make(map[string][]byte)}
}

func (s *GatedStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *GatedStore) Set(key string, value []byte) error {
	if s.Gate != nil {
		<-s.Gate
	}
	if s.FailWrites {
		return errors.New("write failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	s.writes = append(s.writes, key)
	return nil
}

func (s *GatedStore) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

func (s *GatedStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *GatedStore) Close() error {
	return nil
}

// Writes returns the keys written so far, in write-completion order.
func (s *GatedStore) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}
