package http

import (
	"crypto/subtle"

	"translation-bot/internal/ports/input"
	"translation-bot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// secretTokenHeader is set by Telegram on every webhook delivery when the
// webhook was registered with a secret.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// TelegramWebhookHandler struct - Primary/Driving adapter for the Telegram webhook
type TelegramWebhookHandler struct {
	service       input.TelegramWebhookService
	webhookSecret string
	validator     validator.Validator
}

// NewTelegramWebhookHandler func - Creates new Telegram webhook handler
func NewTelegramWebhookHandler(service input.TelegramWebhookService, webhookSecret string) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{
		service:       service,
		webhookSecret: webhookSecret,
		validator:     validator.New(),
	}
}

// HandleWebhook func - Handles incoming Telegram webhook updates
// @Summary Telegram Webhook
// @Description Handles update payloads delivered by the Telegram Bot API
// @Tags Telegram
// @Accept application/json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /webhook/telegram [post]
func (h *TelegramWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	if h.webhookSecret != "" {
		token := c.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.webhookSecret)) != 1 {
			logrus.Warn("Rejected webhook delivery with bad secret token")
			return c.Status(fiber.StatusUnauthorized).JSON(ResponseBody{Status: Unauthorized})
		}
	}

	var request TelegramUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorf("Failed to parse webhook update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := h.validator.ValidateStruct(request); err != nil {
		logrus.Errorf("Invalid webhook update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	// Always acknowledge processed updates; a non-2xx here makes Telegram
	// redeliver the same update. Failures were already replied to the chat
	// or logged inside the service.
	if err := h.service.HandleUpdate(c.Context(), request.ToDomain()); err != nil {
		logrus.Errorf("Failed to handle update %d: %v", request.UpdateID, err)
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}
