package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"translation-bot/configs"
	"translation-bot/internal/domain"
	"translation-bot/internal/ports/input"
	"translation-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure TelegramWebhookService implements the input port
var _ input.TelegramWebhookService = (*TelegramWebhookService)(nil)

const (
	startMessage = `👋 Welcome to the Translation Bot!

I translate every message in this chat between 2-3 languages of your choice.

To get started, tell me which languages you want to use, for example:
"English, Russian, Serbian"

Commands:
/help - show help
/languages - show configured languages
/clear - reset the language selection`

	helpMessage = `🤖 Translation Bot help

1. Send the languages you want to use (2-3), e.g. "English and Russian"
2. After that, every message is translated to all selected languages
3. Messages already in one of the languages are not re-translated to it

Commands:
/start - welcome message
/languages - show configured languages
/clear - reset the language selection
/reset - same as /clear`

	noLanguagesMessage = "No languages configured yet. Send me the languages you want to use, for example: \"English, Russian\""

	languagesClearedMessage = "🗑 Languages cleared. Send me the languages you want to use to start again."

	authPromptPrivate = "🔐 Please enter the code word to use this bot."
	authPromptGroup   = "🔐 This chat is not authorized yet. Someone needs to send the code word to unlock the bot."
	authSuccess       = "✅ Code word accepted! Now tell me which 2-3 languages you want to use, for example: \"English, Russian\""

	authGrantedMessage = `🔓 Access granted! Welcome to the Translation Bot.

Type /help to see all available commands or just tell me which 2-3 languages you want to use.

Example: "English, Russian, Japanese"`

	genericErrorMessage = "😔 Sorry, something went wrong. Please try again."

	// typingRefreshInterval keeps the indicator alive; Telegram drops it
	// after roughly five seconds.
	typingRefreshInterval = 5 * time.Second
)

// TelegramWebhookService struct - Application service dispatching webhook
// updates: command routing, the code-word gate, the daily quota gate and
// the translation pipeline, plus reply formatting.
type TelegramWebhookService struct {
	translator input.TranslationService
	sessions   output.SessionStore
	telegram   output.TelegramClient
	limiter    *RateLimiter
	emojis     *EmojiService
	auth       configs.Auth
}

// NewTelegramWebhookService func - Creates new webhook dispatcher
func NewTelegramWebhookService(
	translator input.TranslationService,
	sessions output.SessionStore,
	telegram output.TelegramClient,
	limiter *RateLimiter,
	emojis *EmojiService,
	auth configs.Auth,
) *TelegramWebhookService {
	return &TelegramWebhookService{
		translator: translator,
		sessions:   sessions,
		telegram:   telegram,
		limiter:    limiter,
		emojis:     emojis,
		auth:       auth,
	}
}

// HandleUpdate processes one webhook update. Updates without a text message
// are ignored. Commands bypass the quota; regular text passes the code-word
// gate, then the quota gate, then the translation pipeline. Pipeline errors
// are rendered to the chat, never returned to Telegram.
func (s *TelegramWebhookService) HandleUpdate(ctx context.Context, update domain.TelegramUpdate) error {
	if update.Message == nil || update.Message.Text == "" {
		logrus.Debugf("Ignoring update %d without message text", update.UpdateID)
		return nil
	}

	message := update.Message
	chatID := message.Chat.ChatID()

	if command, ok := parseCommand(message.Text); ok {
		return s.handleCommand(ctx, command, message)
	}

	session, err := s.sessions.Get(chatID)
	if err != nil {
		return err
	}

	if s.auth.Enabled && !session.Authenticated {
		return s.handleAuthentication(ctx, message, session)
	}

	userID := message.From.UserID()
	if s.limiter.IsExceeded(userID) {
		return s.sendText(ctx, chatID, s.limitExceededMessage(userID))
	}
	s.limiter.Increment(userID)

	// Keep the typing indicator alive while the pipeline runs
	typingCtx, stopTyping := context.WithCancel(ctx)
	defer stopTyping()
	go s.showTyping(typingCtx, chatID)

	result, err := s.translator.ProcessTranslation(ctx, chatID, message.Text)
	stopTyping()
	if err != nil {
		logrus.Errorf("Translation pipeline failed for chat %s: %v", chatID, err)
		return s.sendText(ctx, chatID, s.renderError(err))
	}

	reply, err := s.formatResult(result, message)
	if err != nil {
		logrus.Errorf("Failed to format result for chat %s: %v", chatID, err)
		return s.sendText(ctx, chatID, genericErrorMessage)
	}
	return s.sendText(ctx, chatID, reply)
}

// parseCommand extracts a bot command from message text, tolerating the
// "/cmd@BotName" form Telegram uses in groups.
func parseCommand(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return "", false
	}
	command := strings.Fields(trimmed)[0]
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	return strings.ToLower(command), true
}

func (s *TelegramWebhookService) handleCommand(ctx context.Context, command string, message *domain.TelegramMessage) error {
	chatID := message.Chat.ChatID()
	logrus.Infof("Handling command %s in chat %s", command, chatID)

	switch command {
	case "/start":
		return s.sendText(ctx, chatID, startMessage)

	case "/help":
		return s.sendText(ctx, chatID, helpMessage)

	case "/auth":
		return s.handleAuthCommand(ctx, message)

	case "/languages":
		session, err := s.sessions.Get(chatID)
		if err != nil {
			return err
		}
		if s.auth.Enabled && !session.Authenticated {
			return s.sendText(ctx, chatID, authPromptPrivate)
		}
		if !session.IsConfigured() {
			return s.sendText(ctx, chatID, noLanguagesMessage)
		}
		return s.sendText(ctx, chatID, "🌍 Configured languages: "+formatLanguageList(session.SelectedLanguages))

	case "/clear", "/reset":
		session, err := s.sessions.Get(chatID)
		if err != nil {
			return err
		}
		if s.auth.Enabled && !session.Authenticated {
			return s.sendText(ctx, chatID, authPromptPrivate)
		}
		if err := s.translator.ClearLanguages(chatID); err != nil {
			logrus.Errorf("Failed to clear languages for chat %s: %v", chatID, err)
			return s.sendText(ctx, chatID, s.renderError(err))
		}
		if err := s.emojis.ClearChatEmojis(chatID); err != nil {
			logrus.Warnf("Failed to clear emoji assignments for chat %s: %v", chatID, err)
		}
		return s.sendText(ctx, chatID, languagesClearedMessage)

	default:
		return s.sendText(ctx, chatID, "Unknown command. Use /help to see what I can do.")
	}
}

// handleAuthCommand runs the explicit "/auth <code>" form of the gate
func (s *TelegramWebhookService) handleAuthCommand(ctx context.Context, message *domain.TelegramMessage) error {
	chatID := message.Chat.ChatID()

	if !s.auth.Enabled {
		return s.sendText(ctx, chatID, "🔓 Authentication is disabled for this bot.")
	}

	args := strings.Fields(message.Text)
	if len(args) > 1 && strings.EqualFold(args[1], s.auth.CodeWord) {
		if err := s.sessions.Authenticate(chatID); err != nil {
			return err
		}
		logrus.Infof("Chat %s authenticated via /auth", chatID)
		return s.sendText(ctx, chatID, authGrantedMessage)
	}

	return s.sendText(ctx, chatID, "🔒 Please use: /auth <code word>")
}

// handleAuthentication runs the code-word gate: a matching message flips
// the chat to authenticated, anything else is answered with a prompt.
// Comparison is trimmed and case-insensitive.
func (s *TelegramWebhookService) handleAuthentication(ctx context.Context, message *domain.TelegramMessage, session *domain.ChatSession) error {
	chatID := message.Chat.ChatID()
	candidate := strings.ToLower(strings.TrimSpace(message.Text))

	if candidate == strings.ToLower(s.auth.CodeWord) {
		if err := s.sessions.Authenticate(chatID); err != nil {
			return err
		}
		logrus.Infof("Chat %s authenticated", chatID)
		return s.sendText(ctx, chatID, authSuccess)
	}

	if message.Chat.Type == domain.TelegramChatTypePrivate {
		return s.sendText(ctx, chatID, authPromptPrivate)
	}
	return s.sendText(ctx, chatID, authPromptGroup)
}

// limitExceededMessage builds the quota-exhausted reply with the remaining
// count and the time until the quota window rolls over.
func (s *TelegramWebhookService) limitExceededMessage(userID string) string {
	remaining := s.limiter.Remaining(userID)
	until := s.limiter.TimeUntilReset(userID)
	return fmt.Sprintf("⏳ Daily message limit reached (%d remaining). Your limit resets in %s.",
		remaining, formatDuration(until))
}

// formatDuration renders a countdown as "Xh Ym"
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// showTyping refreshes the typing indicator until the context is cancelled
func (s *TelegramWebhookService) showTyping(ctx context.Context, chatID string) {
	request := domain.ChatActionRequest{ChatID: chatID, Action: domain.TelegramChatActionTyping}
	if err := s.telegram.SendChatAction(ctx, request); err != nil {
		logrus.Debugf("Failed to send typing action to chat %s: %v", chatID, err)
	}

	ticker := time.NewTicker(typingRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.telegram.SendChatAction(ctx, request); err != nil {
				logrus.Debugf("Failed to send typing action to chat %s: %v", chatID, err)
			}
		}
	}
}

// formatResult renders a pipeline result as the chat reply
func (s *TelegramWebhookService) formatResult(result *domain.TranslationResult, message *domain.TelegramMessage) (string, error) {
	switch result.Type {
	case domain.ResultTypeLanguageSetup:
		return fmt.Sprintf("✅ %s\n\nLanguages set: %s",
			result.Message, formatLanguageList(result.Languages)), nil

	case domain.ResultTypeTranslation:
		emoji, err := s.emojis.Assign(message.Chat.ChatID(), message.From.UserID())
		if err != nil {
			logrus.Warnf("Failed to assign emoji in chat %s: %v", message.Chat.ChatID(), err)
			emoji = s.emojis.DefaultEmoji()
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s from %s\n\n", emoji, message.From.DisplayName())
		for _, translation := range result.Translations {
			if translation.Skipped {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", translation.Language.Code, translation.Text)
		}
		return strings.TrimSpace(b.String()), nil

	default:
		return "", fmt.Errorf("unknown result type %q", result.Type)
	}
}

// formatLanguageList renders languages as "English (EN), Russian (RU)"
func formatLanguageList(languages domain.LanguageList) string {
	parts := make([]string, 0, len(languages))
	for _, language := range languages {
		parts = append(parts, fmt.Sprintf("%s (%s)", language.Name, language.Code))
	}
	return strings.Join(parts, ", ")
}

// renderError turns a pipeline error into the text shown to the chat.
// User-correctable errors are surfaced verbatim; detection failures and
// internal errors are rendered generically so provider noise never reaches
// the chat.
func (s *TelegramWebhookService) renderError(err error) string {
	botErr, ok := domain.AsBotError(err)
	if !ok {
		return genericErrorMessage
	}
	if botErr.Code == domain.ErrCodeLanguageDetection {
		return "🤔 I couldn't detect the language of that message. Please try rephrasing it."
	}
	if botErr.UserCorrectable() {
		return "❌ Error: " + botErr.Message
	}
	return genericErrorMessage
}

// sendText delivers a plain-text reply to a chat
func (s *TelegramWebhookService) sendText(ctx context.Context, chatID, text string) error {
	_, err := s.telegram.SendMessage(ctx, domain.SendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		logrus.Errorf("Failed to send message to chat %s: %v", chatID, err)
	}
	return err
}
