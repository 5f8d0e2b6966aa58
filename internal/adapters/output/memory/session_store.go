package memory

import (
	"sync"
	"time"

	"translation-bot/internal/domain"
	"translation-bot/internal/ports/output"
)

// Compile-time check to ensure SessionStore implements the output port
var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore struct - Output adapter for in-memory session storage.
// Uses sync.Map so individual loads and stores are safe under concurrent
// webhook deliveries; the read-modify-write cycle across Get and Set is
// intentionally not serialized (last Set wins, see the port contract).
type SessionStore struct {
	sessions sync.Map
	expiry   time.Duration
}

// NewSessionStore creates an in-memory session store.
// expiry: duration after which unused sessions are discarded.
func NewSessionStore(expiry time.Duration) *SessionStore {
	if expiry <= 0 {
		expiry = domain.DefaultSessionExpiry
	}
	return &SessionStore{expiry: expiry}
}

// Expiry returns the configured session expiry duration
func (m *SessionStore) Expiry() time.Duration {
	return m.expiry
}

// Get retrieves the session for a chat. A missing or expired entry yields a
// fresh default session; expired entries are deleted on the way (lazy
// cleanup), never restored.
func (m *SessionStore) Get(chatID string) (*domain.ChatSession, error) {
	value, exists := m.sessions.Load(chatID)
	if !exists {
		return domain.NewChatSession(chatID), nil
	}

	session, ok := value.(*domain.ChatSession)
	if !ok {
		m.sessions.Delete(chatID)
		return domain.NewChatSession(chatID), nil
	}

	if session.IsExpired(m.expiry) {
		m.sessions.Delete(chatID)
		return domain.NewChatSession(chatID), nil
	}

	session.Touch()
	return session, nil
}

// Set persists the session for its chat and stamps LastActive
func (m *SessionStore) Set(session *domain.ChatSession) error {
	session.Touch()
	m.sessions.Store(session.ChatID, session)
	return nil
}

// Clear removes the session for a chat. Idempotent.
func (m *SessionStore) Clear(chatID string) error {
	m.sessions.Delete(chatID)
	return nil
}

// Authenticate marks the chat's session authenticated and persists it
func (m *SessionStore) Authenticate(chatID string) error {
	session, err := m.Get(chatID)
	if err != nil {
		return err
	}
	session.Authenticated = true
	return m.Set(session)
}

// ActiveCount prunes expired sessions and reports how many remain
func (m *SessionStore) ActiveCount() (int, error) {
	count := 0
	m.sessions.Range(func(key, value interface{}) bool {
		session, ok := value.(*domain.ChatSession)
		if !ok || session.IsExpired(m.expiry) {
			m.sessions.Delete(key)
			return true
		}
		count++
		return true
	})
	return count, nil
}
