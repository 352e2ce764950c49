package session

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/dgallion1/batnadoc/internal/history"
	"github.com/google/uuid"
)

// Session is one user's working state: the live form, the document on
// display and the history of past generations.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	history    *history.Cache
	form       map[string]string
	current    *history.Entry
	generating bool
	lastSeen   time.Time
}

func newSession(id string, capacity int, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		history:   history.New(capacity),
		form:      map[string]string{},
		lastSeen:  now,
	}
}

// View is a read-only copy of session state for rendering.
type View struct {
	ID       string            `json:"session_id"`
	Form     map[string]string `json:"form"`
	Current  *history.Entry    `json:"current,omitempty"`
	History  []history.Entry   `json:"history"`
	Busy     bool              `json:"generating"`
	Capacity int               `json:"capacity"`
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:       s.ID,
		Form:     maps.Clone(s.form),
		History:  s.history.List(),
		Busy:     s.generating,
		Capacity: s.history.Cap(),
	}
	if s.current != nil {
		cur := *s.current
		cur.Input = maps.Clone(cur.Input)
		v.Current = &cur
	}
	return v
}

// SetForm replaces the live form values.
func (s *Session) SetForm(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setFormLocked(values)
}

func (s *Session) setFormLocked(values map[string]string) {
	s.form = maps.Clone(values)
	if s.form == nil {
		s.form = map[string]string{}
	}
}

// ClearForm empties the live form and leaves the displayed document alone.
func (s *Session) ClearForm() {
	s.SetForm(nil)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	capacity int
	now      func() time.Time
	newID    func() string
}

// NewStore returns an empty registry. Each session gets a history cache of
// the given capacity.
func NewStore(ttl time.Duration, capacity int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Get returns the session for id and marks it active, or nil.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	sess := s.sessions[id]
	s.mu.Unlock()
	if sess != nil {
		sess.touch(s.now())
	}
	return sess
}

// Create registers a new empty session.
func (s *Store) Create() *Session {
	sess := newSession(s.newID(), s.capacity, s.now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Transient returns an empty session that is not registered. Read-only
// requests without a known session are served from one.
func (s *Store) Transient() *Session {
	return newSession("", s.capacity, s.now())
}

// Resolve returns the session for id, creating one when id is unknown.
func (s *Store) Resolve(id string) (sess *Session, created bool) {
	if id != "" {
		if sess := s.Get(id); sess != nil {
			return sess, false
		}
	}
	return s.Create(), true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
