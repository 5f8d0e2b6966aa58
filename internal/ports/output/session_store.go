package output

import "translation-bot/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for managing chat sessions. A session
// is exclusively owned by the store: Get hands out a live reference that
// callers mutate and must persist back with Set. There is no per-chat lock;
// two concurrent read-modify-write passes on the same chat race and the
// last Set wins. That matches the source system and is deliberately kept.
type SessionStore interface {
	// Get retrieves the session for a chat. If none exists, or the stored
	// one has been unused beyond the store's expiry, a fresh default session
	// is returned (expired state is discarded, never restored).
	Get(chatID string) (*domain.ChatSession, error)

	// Set persists the session for its chat and stamps LastActive with the
	// current time, replacing whatever was stored before.
	Set(session *domain.ChatSession) error

	// Clear removes the session for a chat. Idempotent.
	Clear(chatID string) error

	// Authenticate marks the chat's session authenticated and persists it.
	// This is the only path that flips the flag.
	Authenticate(chatID string) error

	// ActiveCount prunes expired sessions and reports how many remain.
	ActiveCount() (int, error)
}
