package widget

import (
	"strings"
	"sync"
)

// Key normalizes a location name for duplicate suppression
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Session is the ordered set of location keys already rendered, plus the
// keys whose fetch is still running. It lives as long as one page load.
type Session struct {
	mutex    sync.Mutex
	keys     []string
	known    map[string]struct{}
	inFlight map[string]struct{}
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		known:    make(map[string]struct{}),
		inFlight: make(map[string]struct{}),
	}
}

// Has reports whether key was committed
func (s *Session) Has(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.known[key]
	return ok
}

// Begin reserves key for a fetch. It fails when the key is committed or
// another fetch for it is running.
func (s *Session) Begin(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.known[key]; ok {
		return false
	}
	if _, ok := s.inFlight[key]; ok {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

// Release drops the reservation taken by Begin
func (s *Session) Release(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.inFlight, key)
}

// Commit records key as rendered. Committing twice is a no-op.
func (s *Session) Commit(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.inFlight, key)
	if _, ok := s.known[key]; ok {
		return false
	}
	s.known[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// Keys returns the committed keys in insertion order
func (s *Session) Keys() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string(nil), s.keys...)
}
