package openai

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

	"translation-bot/configs"
	"translation-bot/internal/domain"
	"translation-bot/internal/ports/output"
	"translation-bot/pkg/jsonutil"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LLMClientAdapter implements the output port
var _ output.LLMClient = (*LLMClientAdapter)(nil)

const (
	defaultBaseURL     = "https://api.openai.com"
	defaultTemperature = 0.3
	requestTimeout     = 60 * time.Second
)

// LLMClientAdapter struct - Output adapter for an OpenAI-compatible chat
// completions API. Applies bounded retry with exponential backoff
// (baseDelay * 2^attempt, no jitter) and guarantees parseable output when a
// JSON response is requested.
type LLMClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	baseDelay  time.Duration

	// sleep is the inter-attempt delay function. Tests inject a recorder
	// here so backoff runs without wall-clock waits.
	sleep func(time.Duration)
}

// NewLLMClientAdapter func - Creates new OpenAI client adapter
func NewLLMClientAdapter(config configs.OpenAI, retry configs.Retry) *LLMClientAdapter {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	baseDelay := time.Duration(retry.BaseDelayMs) * time.Millisecond
	if retry.BaseDelayMs <= 0 {
		baseDelay = time.Second
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

	adapter := &LLMClientAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		model:      config.Model,
		maxRetries: retry.MaxRetries,
		baseDelay:  baseDelay,
		sleep:      time.Sleep,
	}

	logrus.Infof("OpenAI client adapter initialized with base URL: %s, model: %s", baseURL, config.Model)

	return adapter
}

// Complete sends the prompt and returns the model's trimmed reply text.
// Attempts run sequentially: the initial call plus up to maxRetries retries,
// sleeping baseDelay*2^attempt between them. When options.JSONResponse is
// set, a reply that cannot be parsed, extracted or repaired into valid JSON
// counts as a failed attempt; exhaustion yields an LLM_ERROR carrying the
// last failure and the total attempt count.
func (a *LLMClientAdapter) Complete(ctx context.Context, prompt string, options output.CompletionOptions) (string, error) {
	model := a.model
	if options.Model != "" {
		model = options.Model
	}

	maxRetries := a.maxRetries
	if options.MaxRetries != nil {
		maxRetries = *options.MaxRetries
	}

	temperature := defaultTemperature
	if options.Temperature != nil {
		temperature = *options.Temperature
	}

	reqBody := chatCompletionAPIRequest{
		Model:       model,
		Messages:    []chatMessageAPI{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}
	if options.JSONResponse {
		reqBody.ResponseFormat = &responseFormatAPI{Type: "json_object"}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		content, err := a.doRequest(ctx, reqBody)
		if err == nil {
			content = strings.TrimSpace(content)
			if options.JSONResponse {
				content, err = jsonutil.ValidateAndRepairJSON(content)
			}
			if err == nil {
				return content, nil
			}
		}

		lastErr = err
		logrus.Errorf("LLM call failed (attempt %d/%d): %v", attempt+1, maxRetries+1, err)

		if attempt == maxRetries {
			break
		}

		delay := a.baseDelay * (1 << attempt)
		logrus.Infof("Retrying in %v...", delay)
		a.sleep(delay)
	}

	return "", domain.NewLLMError(
		fmt.Sprintf("LLM call failed after %d attempts: %v", maxRetries+1, lastErr), lastErr)
}

// doRequest executes one chat completion HTTP round trip
func (a *LLMClientAdapter) doRequest(ctx context.Context, reqBody chatCompletionAPIRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to parse chat completion response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return apiResp.Choices[0].Message.Content, nil
}

// API request/response structures for the OpenAI-compatible API

// chatMessageAPI represents a message in the API request
type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormatAPI requests structured output from the provider
type responseFormatAPI struct {
	Type string `json:"type"`
}

// chatCompletionAPIRequest represents the request body for chat completions
type chatCompletionAPIRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessageAPI   `json:"messages"`
	Temperature    float64            `json:"temperature"`
	ResponseFormat *responseFormatAPI `json:"response_format,omitempty"`
}

// chatCompletionAPIResponse represents the chat completions response
type chatCompletionAPIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
