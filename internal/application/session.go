package application

import (
	"sync"
	"time"
)

// Sessions is a short-lived staging area for multi-step forms, keyed by actor.
// Entries expire after ttl; a non-positive ttl never expires.
type Sessions[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]sessionEntry[T]
}

type sessionEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewSessions[T any](ttl time.Duration, now func() time.Time) *Sessions[T] {
	if now == nil {
		now = time.Now
	}
	return &Sessions[T]{ttl: ttl, now: now, entries: map[string]sessionEntry[T]{}}
}

// Put replaces any pending session of key.
func (s *Sessions[T]) Put(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.entries[key] = sessionEntry[T]{value: value, expiresAt: exp}
}

// Peek returns the live session of key without consuming it.
func (s *Sessions[T]) Peek(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

// Take returns and removes the session of key. Expired sessions are removed
// and reported as missing.
func (s *Sessions[T]) Take(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.get(key)
	delete(s.entries, key)
	return v, ok
}

func (s *Sessions[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.entries)
}

func (s *Sessions[T]) get(key string) (T, bool) {
	var zero T
	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	if s.expired(e) {
		delete(s.entries, key)
		return zero, false
	}
	return e.value, true
}

func (s *Sessions[T]) sweep() {
	for k, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, k)
		}
	}
}

func (s *Sessions[T]) expired(e sessionEntry[T]) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
