package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

// DefaultSessionCapacity bounds the number of live sessions.
const DefaultSessionCapacity = 1000

// Session owns one conversation transcript. The mutex serializes the
// respond pipeline so turns of one session never interleave.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	turns []domain.ChatTurn
}

// NewSession returns an empty session with a fresh id.
func NewSession(now time.Time) *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: now.UTC()}
}

// Transcript returns a copy of every stored turn, oldest first.
func (s *Session) Transcript() []domain.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len is the number of stored turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// lastTurns returns up to n most recent turns. Callers hold mu.
func (s *Session) lastTurns(n int) []domain.ChatTurn {
	if len(s.turns) <= n {
		return s.turns
	}
	return s.turns[len(s.turns)-n:]
}

// SessionStore keeps sessions in a bounded LRU; the least recently used
// session is evicted once capacity is reached.
type SessionStore struct {
	cache *lru.Cache[string, *Session]
	Now   func() time.Time
}

// NewSessionStore creates a store holding at most capacity sessions.
// Non-positive capacities use DefaultSessionCapacity.
func NewSessionStore(capacity int) (*SessionStore, error) {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	c, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &SessionStore{cache: c, Now: time.Now}, nil
}

// Create registers a new empty session.
func (st *SessionStore) Create() *Session {
	s := NewSession(st.Now())
	st.cache.Add(s.ID, s)
	return s
}

// Get returns the session or ErrSessionNotFound.
func (st *SessionStore) Get(id string) (*Session, error) {
	s, ok := st.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Len is the number of live sessions.
func (st *SessionStore) Len() int { return st.cache.Len() }
