package history

import (
	"sync"
	"time"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/llm"
)

const DefaultCapacity = 10

type session struct {
	msgs     []llm.Message
	lastSeen time.Time
}

// Manager keeps a bounded per-channel window of conversation turns.
// When an append would exceed capacity the oldest turns are dropped,
// never the most recent ones.
type Manager struct {
	mu       sync.RWMutex
	capacity int
	sessions map[string]*session
	now      func() time.Time
}

func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		capacity: capacity,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

func (m *Manager) Reset(channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, channelID)
}

func (m *Manager) AppendUser(channelID, content string) {
	m.append(channelID, llm.Message{Role: "user", Content: content})
}

func (m *Manager) AppendAssistant(channelID, content string) {
	m.append(channelID, llm.Message{Role: "assistant", Content: content})
}

func (m *Manager) append(channelID string, msg llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[channelID]
	if s == nil {
		s = &session{}
		m.sessions[channelID] = s
	}
	s.msgs = append(s.msgs, msg)
	if n := len(s.msgs) - m.capacity; n > 0 {
		s.msgs = append(s.msgs[:0:0], s.msgs[n:]...)
	}
	s.lastSeen = m.now()
}

// Get returns the retained turns for a channel, oldest first.
func (m *Manager) Get(channelID string) []llm.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.sessions[channelID]
	if s == nil {
		return nil
	}
	out := make([]llm.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// EvictIdle drops channels with no activity for at least ttl and
// returns how many were removed.
func (m *Manager) EvictIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-ttl)
	evicted := 0
	for ch, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, ch)
			evicted++
		}
	}
	return evicted
}
