package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"translation-bot/internal/domain"
	"translation-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure TelegramClientAdapter implements the output port
var _ output.TelegramClient = (*TelegramClientAdapter)(nil)

const (
	defaultAPIBaseURL = "https://api.telegram.org"
	requestTimeout    = 30 * time.Second
)

// TelegramClientAdapter struct - Output adapter for the Telegram Bot API.
// Speaks the raw HTTP API (sendMessage, sendChatAction, setWebhook).
type TelegramClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
}

// NewTelegramClientAdapter func - Creates new Telegram client adapter
func NewTelegramClientAdapter(botToken string) (*TelegramClientAdapter, error) {
	return NewTelegramClientAdapterWithBaseURL(botToken, defaultAPIBaseURL)
}

// NewTelegramClientAdapterWithBaseURL func - Constructor with an explicit
// API base URL, used by tests to point at a mock server
func NewTelegramClientAdapterWithBaseURL(botToken, baseURL string) (*TelegramClientAdapter, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &TelegramClientAdapter{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		botToken:   botToken,
	}, nil
}

// SendMessage delivers a text message to a chat
func (a *TelegramClientAdapter) SendMessage(ctx context.Context, request domain.SendMessageRequest) (*domain.TelegramMessageResponse, error) {
	payload := map[string]interface{}{
		"chat_id": request.ChatID,
		"text":    request.Text,
	}
	if request.ParseMode != "" {
		payload["parse_mode"] = request.ParseMode
	}

	if err := a.call(ctx, "sendMessage", payload); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return &domain.TelegramMessageResponse{
		Status:  "success",
		Message: "Message sent successfully",
	}, nil
}

// SendChatAction shows a transient status indicator in a chat
func (a *TelegramClientAdapter) SendChatAction(ctx context.Context, request domain.ChatActionRequest) error {
	payload := map[string]interface{}{
		"chat_id": request.ChatID,
		"action":  string(request.Action),
	}

	if err := a.call(ctx, "sendChatAction", payload); err != nil {
		return fmt.Errorf("failed to send chat action: %w", err)
	}
	return nil
}

// SetWebhook points the bot's webhook at the given public URL
func (a *TelegramClientAdapter) SetWebhook(ctx context.Context, url string) error {
	payload := map[string]interface{}{
		"url": url,
	}

	if err := a.call(ctx, "setWebhook", payload); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	logrus.Infof("Telegram webhook set to %s", url)
	return nil
}

// apiResponse is the Bot API's generic result envelope
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// call executes one Bot API method round trip
func (a *TelegramClientAdapter) call(ctx context.Context, method string, payload map[string]interface{}) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", a.baseURL, a.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("%s returned unparseable response (status %d): %s", method, resp.StatusCode, string(body))
	}

	if !result.OK {
		return fmt.Errorf("%s rejected by Telegram (code %d): %s", method, result.ErrorCode, result.Description)
	}

	return nil
}
