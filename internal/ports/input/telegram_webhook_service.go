package input

import (
	"context"

	"translation-bot/internal/domain"
)

// TelegramWebhookService interface - Input port (use case)
// Defines what the application does with updates delivered by Telegram.
type TelegramWebhookService interface {
	// HandleUpdate processes one webhook update: command routing, the
	// auth/rate-limit gates and the translation pipeline.
	HandleUpdate(ctx context.Context, update domain.TelegramUpdate) error
}
