package application

import (
	"math/rand"

	"translation-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// emojiPalette is the fixed ordered set of neutral markers assigned to
// users within a chat.
var emojiPalette = []string{
	"🔴", "🟠", "🟡", "🟢", "🔵", "🟣", "🟤", "⚫", "⚪",
	"🔸", "🔹", "🔶", "🔷", "🔺", "🔻", "⭐", "🌟", "✨",
	"🔥", "⚡", "🌈", "🎯", "🎪", "🎨", "🎵", "🎶", "🎤",
	"🍀", "🌺", "🌸", "🌼", "🌻", "🌷", "🌹", "🏆", "🎖️",
	"💎", "⭕", "❌", "✅", "🔔", "💫", "🔮", "🎭", "🎬",
	"📍", "🎲", "🔑", "🗝️", "💰", "🔰", "⚽", "🏀",
	"🚀", "✈️", "🎈", "🎊", "🎁", "🎀", "🏅", "🎃", "🎂",
}

// EmojiService struct - Application service assigning each user in a chat a
// stable visual marker. Assignments live in the chat's session, so they are
// scoped per chat and vanish with session expiry.
type EmojiService struct {
	sessions output.SessionStore
	palette  []string

	// randIntn picks the fallback marker once the palette is exhausted;
	// tests inject a deterministic pick.
	randIntn func(int) int
}

// EmojiStats struct - Per-chat palette usage
type EmojiStats struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

// NewEmojiService func - Creates new emoji service
func NewEmojiService(sessions output.SessionStore) *EmojiService {
	return &EmojiService{
		sessions: sessions,
		palette:  emojiPalette,
		randIntn: rand.Intn,
	}
}

// DefaultEmoji returns the fallback marker used when assignment fails
func (e *EmojiService) DefaultEmoji() string {
	return e.palette[0]
}

// Assign returns the user's marker in the given chat, allocating one if
// needed. An existing assignment is returned unchanged. Otherwise the first
// palette entry not held by another user in the chat is taken; with the
// palette exhausted a uniformly random entry is used, accepting collisions.
// The assignment is persisted to the session immediately.
func (e *EmojiService) Assign(chatID, userID string) (string, error) {
	session, err := e.sessions.Get(chatID)
	if err != nil {
		return "", err
	}

	if session.UserEmojis == nil {
		session.UserEmojis = make(map[string]string)
	}

	if emoji, ok := session.UserEmojis[userID]; ok {
		return emoji, nil
	}

	used := make(map[string]bool, len(session.UserEmojis))
	for _, emoji := range session.UserEmojis {
		used[emoji] = true
	}

	assigned := ""
	for _, emoji := range e.palette {
		if !used[emoji] {
			assigned = emoji
			break
		}
	}
	if assigned == "" {
		assigned = e.palette[e.randIntn(len(e.palette))]
		logrus.Warnf("Emoji palette exhausted in chat %s, assigning random marker", chatID)
	}

	session.UserEmojis[userID] = assigned
	if err := e.sessions.Set(session); err != nil {
		return "", err
	}

	return assigned, nil
}

// ClearChatEmojis removes all marker assignments in a chat
func (e *EmojiService) ClearChatEmojis(chatID string) error {
	session, err := e.sessions.Get(chatID)
	if err != nil {
		return err
	}
	session.UserEmojis = make(map[string]string)
	return e.sessions.Set(session)
}

// ChatEmojiStats reports palette usage in a chat
func (e *EmojiService) ChatEmojiStats(chatID string) (EmojiStats, error) {
	session, err := e.sessions.Get(chatID)
	if err != nil {
		return EmojiStats{}, err
	}
	used := len(session.UserEmojis)
	return EmojiStats{
		Total:     len(e.palette),
		Used:      used,
		Available: len(e.palette) - used,
	}, nil
}
