// Package session holds editing sessions: one caller-owned document header
// list per session, kept in memory between edit calls.
package session

import (
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/builder"
	"github.com/dgallion1/docoutline/internal/matcher"
	"github.com/dgallion1/docoutline/internal/outline"
)

// Session owns one document's header list. All access goes through its
// mutex; the engine itself stays single-threaded per call.
type Session struct {
	mu sync.Mutex

	ID        string    `json:"session_id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	headers []*outline.Header
}

// New creates a session owning the given header list.
func New(id, filename string, headers []*outline.Header) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		headers:   headers,
	}
}

// Headers returns a deep copy of the current header list.
func (s *Session) Headers() []*outline.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return outline.Clone(s.headers)
}

// Edit applies a builder operation to the header list under the session
// lock. The error, if any, is the operation's own.
func (s *Session) Edit(op func(headers []*outline.Header) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := op(s.headers)
	s.UpdatedAt = time.Now()
	return err
}

// Check runs a non-mutating probe (CanIndent/CanOutdent) over the list.
func (s *Session) Check(probe func(headers []*outline.Header) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return probe(s.headers)
}

// Tree converts the current list into the emitted outline tree.
func (s *Session) Tree() []*outline.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return builder.ToTree(s.headers)
}

// Match runs the header matcher against a copy of the current list. Records
// hold header pointers, so matching over the stored list would leak live
// state past the lock; callers get detached headers like Headers() returns.
func (s *Session) Match(entries []outline.TargetEntry, opts matcher.Options) []matcher.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return matcher.Match(entries, outline.Clone(s.headers), opts)
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Cleanup removes sessions idle longer than the TTL.
func (st *Store) Cleanup() {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.UpdatedAt)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}
}
