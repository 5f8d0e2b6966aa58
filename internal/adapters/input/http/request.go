package http

import "translation-bot/internal/domain"

type (
	// TelegramUpdateRequest struct - HTTP request DTO mirroring the Bot API
	// update payload, reduced to the fields the bot consumes
	TelegramUpdateRequest struct {
		UpdateID int64                   `json:"update_id" validate:"required"`
		Message  *TelegramMessageRequest `json:"message" validate:"omitempty"`
	}

	// TelegramMessageRequest struct - Inbound message DTO
	TelegramMessageRequest struct {
		MessageID int64               `json:"message_id"`
		From      TelegramUserRequest `json:"from"`
		Chat      TelegramChatRequest `json:"chat"`
		Text      string              `json:"text"`
	}

	// TelegramUserRequest struct - Message sender DTO
	TelegramUserRequest struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		Username  string `json:"username"`
	}

	// TelegramChatRequest struct - Chat DTO
	TelegramChatRequest struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
)

// ToDomain converts the HTTP DTO to the domain update
func (r TelegramUpdateRequest) ToDomain() domain.TelegramUpdate {
	update := domain.TelegramUpdate{UpdateID: r.UpdateID}
	if r.Message != nil {
		update.Message = &domain.TelegramMessage{
			MessageID: r.Message.MessageID,
			From: domain.TelegramUser{
				ID:        r.Message.From.ID,
				FirstName: r.Message.From.FirstName,
				Username:  r.Message.From.Username,
			},
			Chat: domain.TelegramChat{
				ID:   r.Message.Chat.ID,
				Type: domain.TelegramChatType(r.Message.Chat.Type),
			},
			Text: r.Message.Text,
		}
	}
	return update
}
