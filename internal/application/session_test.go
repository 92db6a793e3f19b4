package application

import (
	"testing"
	"time"
)

func TestSessionsTakeConsumes(t *testing.T) {
	s := NewSessions[string](time.Minute, nil)
	s.Put("u1", "draft")

	if v, ok := s.Peek("u1"); !ok || v != "draft" {
		t.Fatalf("Peek = %q, %v", v, ok)
	}
	if v, ok := s.Take("u1"); !ok || v != "draft" {
		t.Fatalf("Take = %q, %v", v, ok)
	}
	if _, ok := s.Take("u1"); ok {
		t.Error("session survived Take")
	}
}

func TestSessionsExpire(t *testing.T) {
	clock := newFakeClock(time.Unix(0, 0))
	s := NewSessions[int](10*time.Minute, clock.Now)
	s.Put("a", 1)
	clock.Advance(5 * time.Minute)
	s.Put("b", 2)

	clock.Advance(5 * time.Minute)
	if _, ok := s.Peek("a"); ok {
		t.Error("a should have expired")
	}
	if v, ok := s.Peek("b"); !ok || v != 2 {
		t.Errorf("b = %d, %v", v, ok)
	}
	if n := s.Len(); n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}

	s.Put("b", 3)
	clock.Advance(9 * time.Minute)
	if v, ok := s.Take("b"); !ok || v != 3 {
		t.Errorf("Put should restart the TTL, got %d, %v", v, ok)
	}
}

func TestSessionsWithoutTTL(t *testing.T) {
	clock := newFakeClock(time.Unix(0, 0))
	s := NewSessions[int](0, clock.Now)
	s.Put("a", 1)
	clock.Advance(1000 * time.Hour)
	if _, ok := s.Peek("a"); !ok {
		t.Error("zero TTL must never expire")
	}
}
