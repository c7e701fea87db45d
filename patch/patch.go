// Package patch provides the flat key/value store that parameters persist
// into. Keys are slash separated paths such as "params/slew/value".
//
// Store access happens on the control thread only.
package patch

import (
	"slices"
	"sync"
)

// Store is the persisted patch state, read and written by parameters.
type Store interface {
	Get(key string) (float64, bool)
	Set(key string, value float64)
}

// State is an in-memory Store guarded by a mutex.
type State struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewState returns an empty State.
func NewState() *State {
	return &State{values: make(map[string]float64)}
}

// Get returns the value stored under key.
func (s *State) Get(key string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *State) Set(key string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key.
func (s *State) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Len returns the number of stored keys.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Keys returns all keys in sorted order.
func (s *State) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Key joins path elements with "/".
func Key(elems ...string) string {
	n := 0
	for _, e := range elems {
		n += len(e) + 1
	}
	b := make([]byte, 0, n)
	for i, e := range elems {
		if i > 0 {
			b = append(b, '/')
		}
		b = append(b, e...)
	}
	return string(b)
}
