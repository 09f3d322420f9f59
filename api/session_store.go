package api

import (
	"sync"
	"time"

	"weather-widget/datasource"
	"weather-widget/render"
	"weather-widget/widget"

	"github.com/google/uuid"
)

// sessionView is the display surface of one page load
type sessionView struct {
	mutex   sync.RWMutex
	cards   []render.Card
	loading bool
}

func (v *sessionView) AppendCard(card render.Card) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.cards = append(v.cards, card)
}

func (v *sessionView) SetLoading(loading bool) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.loading = loading
}

func (v *sessionView) snapshot() ([]render.Card, bool) {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return append([]render.Card(nil), v.cards...), v.loading
}

// Session is one page load: its controller and the cards rendered so far
type Session struct {
	ID         string
	Controller *widget.Controller
	view       *sessionView
	lastSeen   time.Time
}

// Cards returns the rendered cards in order and whether a fetch is running
func (s *Session) Cards() ([]render.Card, bool) {
	return s.view.snapshot()
}

// SessionStore holds the live sessions by ID
type SessionStore struct {
	provider datasource.WeatherProvider
	units    render.Units
	data     map[string]*Session
	mutex    sync.RWMutex
}

// NewSessionStore creates an empty in-memory session store
func NewSessionStore(provider datasource.WeatherProvider, units render.Units) *SessionStore {
	return &SessionStore{
		provider: provider,
		units:    units,
		data:     make(map[string]*Session),
	}
}

// Create starts a new session with an empty location list
func (s *SessionStore) Create() *Session {
	view := &sessionView{}
	session := &Session{
		ID: uuid.New().String(),
		// notifications travel back in the HTTP response
		Controller: widget.NewController(s.provider, view, nil, s.units),
		view:       view,
		lastSeen:   time.Now(),
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[session.ID] = session
	return session
}

// Get returns the session and marks it as recently used
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.data[id]
	if exists {
		session.lastSeen = time.Now()
	}
	return session, exists
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// PruneIdle removes sessions unused for longer than maxAge
func (s *SessionStore) PruneIdle(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	prunedCount := 0

	for id, session := range s.data {
		if session.lastSeen.Before(cutoff) {
			delete(s.data, id)
			prunedCount++
		}
	}

	return prunedCount
}
