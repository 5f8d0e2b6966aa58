package domain

import "time"

// DefaultSessionExpiry const - Sessions unused this long are discarded
const DefaultSessionExpiry = 24 * time.Hour

// ChatSession represents per-chat conversation state: the selected
// translation languages, the authentication flag and the emoji assigned to
// each user in the chat. A chat may hold multiple users sharing one session.
type ChatSession struct {
	ChatID            string            // Telegram chat identifier
	SelectedLanguages LanguageList      // 0 (unconfigured) or 2-3 entries
	Authenticated     bool              // Set once the code word was given
	UserEmojis        map[string]string // userID -> assigned emoji
	LastActive        time.Time         // For session expiration checking
}

// NewChatSession creates a fresh session with empty defaults for a chat
func NewChatSession(chatID string) *ChatSession {
	return &ChatSession{
		ChatID:            chatID,
		SelectedLanguages: LanguageList{},
		UserEmojis:        make(map[string]string),
		LastActive:        time.Now(),
	}
}

// IsExpired checks if the session has been unused beyond the given expiry
func (s *ChatSession) IsExpired(expiry time.Duration) bool {
	return time.Since(s.LastActive) > expiry
}

// IsConfigured reports whether the chat has completed language setup
func (s *ChatSession) IsConfigured() bool {
	return len(s.SelectedLanguages) > 0
}

// Touch updates the last-active stamp
func (s *ChatSession) Touch() {
	s.LastActive = time.Now()
}
