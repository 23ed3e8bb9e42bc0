package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hcp-crm/internal/agent"
)

// ErrSessionBusy means a turn for this session is already in flight
var ErrSessionBusy = errors.New("session has a turn in flight")

const (
	presenceKeyFmt = "agent_session:%s"
	presenceTTL    = 30 * time.Minute
)

// Session owns one conversation's transcript and working record. Turns for a
// session run one at a time; overlapping requests are rejected, not queued,
// which preserves last-writer-wins merge order.
type Session struct {
	ID         string
	Transcript *agent.Transcript
	Record     agent.WorkingRecord

	mu sync.Mutex
}

// BeginTurn claims the session for one turn
func (s *Session) BeginTurn() error {
	if !s.mu.TryLock() {
		return ErrSessionBusy
	}
	return nil
}

// EndTurn releases the session
func (s *Session) EndTurn() {
	s.mu.Unlock()
}

// Manager keeps all live sessions. Sessions are process-local; redis only
// tracks presence keys with a TTL so active counts survive best-effort.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	rdb      *redis.Client
}

// NewManager creates a session manager. rdb may be nil (presence disabled).
func NewManager(rdb *redis.Client) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		rdb:      rdb,
	}
}

// GetOrCreate returns the session for id, creating it (and the id itself,
// when empty) as needed.
func (m *Manager) GetOrCreate(id string) *Session {
	if id == "" {
		id = "session_" + uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{
		ID:         id,
		Transcript: &agent.Transcript{},
		Record:     agent.WorkingRecord{},
	}
	m.sessions[id] = s
	log.Printf("[Session] created %s", id)
	return s
}

// Get returns an existing session
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End destroys a session and its presence key
func (m *Manager) End(ctx context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.rdb != nil {
		if err := m.rdb.Del(ctx, fmt.Sprintf(presenceKeyFmt, id)).Err(); err != nil {
			log.Printf("[Session] failed to drop presence for %s: %v", id, err)
		}
	}
	log.Printf("[Session] ended %s", id)
}

// Touch refreshes the session's presence key. Best-effort: a missing or
// unreachable redis never fails a turn.
func (m *Manager) Touch(ctx context.Context, id string) {
	if m.rdb == nil {
		return
	}
	key := fmt.Sprintf(presenceKeyFmt, id)
	if err := m.rdb.Set(ctx, key, "1", presenceTTL).Err(); err != nil {
		log.Printf("[Session] presence refresh failed for %s: %v", id, err)
	}
}

// ActiveSessionCount returns the number of sessions with a live presence key.
func (m *Manager) ActiveSessionCount(ctx context.Context) (int, error) {
	if m.rdb == nil {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return len(m.sessions), nil
	}

	var cursor uint64
	count := 0
	for {
		keys, newCursor, err := m.rdb.Scan(ctx, cursor, "agent_session:*", 100).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		if newCursor == 0 {
			break
		}
		cursor = newCursor
	}
	return count, nil
}
