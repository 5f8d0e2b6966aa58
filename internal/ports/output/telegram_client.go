package output

import (
	"context"

	"translation-bot/internal/domain"
)

// TelegramClient interface - Output port
// Defines what the application needs from the Telegram Bot API for sending
// replies and status indicators back to chats.
type TelegramClient interface {
	// SendMessage delivers a text message to a chat.
	SendMessage(ctx context.Context, request domain.SendMessageRequest) (*domain.TelegramMessageResponse, error)

	// SendChatAction shows a transient status (e.g. typing) in a chat.
	// Failures are non-fatal to message processing.
	SendChatAction(ctx context.Context, request domain.ChatActionRequest) error

	// SetWebhook points the bot's webhook at the given public URL.
	SetWebhook(ctx context.Context, url string) error
}
