package history

import (
	"sync"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one exchanged message. HTML is the formatted form of Text for
// assistant turns; Failed marks the reply shown when the relay is down.
type Turn struct {
	Role   Role      `json:"role"`
	Text   string    `json:"text"`
	HTML   string    `json:"html,omitempty"`
	At     time.Time `json:"at"`
	Failed bool      `json:"failed,omitempty"`
}

// Log is the ordered, in-memory turn list of one conversation. It is never
// persisted.
type Log struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewLog() *Log { return &Log{} }

func (l *Log) Append(t Turn) {
	if t.At.IsZero() {
		t.At = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, t)
}

// Turns returns a copy of the log in insertion order.
func (l *Log) Turns() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Manager keys conversation logs by session id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Log
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Log)}
}

// Open returns the log for id, creating it on first use.
func (m *Manager) Open(id string) *Log {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.sessions[id]
	if !ok {
		l = NewLog()
		m.sessions[id] = l
	}
	return l
}

// Reset forgets the log of id. A later Open starts an empty one.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
