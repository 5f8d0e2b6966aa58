package domain

import "strconv"

// TelegramChatType represents the kind of chat an update came from
type TelegramChatType string

const (
	// TelegramChatTypePrivate - One-on-one chat
	TelegramChatTypePrivate TelegramChatType = "private"
	// TelegramChatTypeGroup - Group chat
	TelegramChatTypeGroup TelegramChatType = "group"
	// TelegramChatTypeSupergroup - Supergroup chat
	TelegramChatTypeSupergroup TelegramChatType = "supergroup"
	// TelegramChatTypeChannel - Channel
	TelegramChatTypeChannel TelegramChatType = "channel"
)

// TelegramChatAction type - Status shown to the chat while processing
type TelegramChatAction string

// TelegramChatActionTyping - "typing..." indicator
const TelegramChatActionTyping TelegramChatAction = "typing"

// TelegramUser represents the sender of a message (domain entity)
type TelegramUser struct {
	ID        int64
	FirstName string
	Username  string
}

// DisplayName returns the name shown next to translated messages
func (u TelegramUser) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "Anonymous"
}

// UserID returns the user identifier as the string key used by sessions
func (u TelegramUser) UserID() string {
	return strconv.FormatInt(u.ID, 10)
}

// TelegramChat represents the chat an update belongs to
type TelegramChat struct {
	ID   int64
	Type TelegramChatType
}

// ChatID returns the chat identifier as the string key used by sessions
func (c TelegramChat) ChatID() string {
	return strconv.FormatInt(c.ID, 10)
}

// TelegramMessage represents an inbound message (domain entity)
type TelegramMessage struct {
	MessageID int64
	From      TelegramUser
	Chat      TelegramChat
	Text      string
}

// TelegramUpdate represents a webhook update from the Telegram Bot API
type TelegramUpdate struct {
	UpdateID int64
	Message  *TelegramMessage
}

// SendMessageRequest struct - Domain DTO for an outbound chat message
type SendMessageRequest struct {
	ChatID    string
	Text      string
	ParseMode string // optional, e.g. "Markdown"
}

// ChatActionRequest struct - Domain DTO for a chat status indicator
type ChatActionRequest struct {
	ChatID string
	Action TelegramChatAction
}

// TelegramMessageResponse struct - Domain DTO for a Bot API send result
type TelegramMessageResponse struct {
	Status  string
	Message string
}
