package output

import "context"

// CompletionOptions struct - Per-call options for the LLM gateway.
// Zero values fall back to the gateway's configured defaults.
type CompletionOptions struct {
	// Model overrides the configured model identifier when non-empty.
	Model string

	// MaxRetries overrides the configured additional-attempt budget when
	// non-nil. 0 means a single attempt with no retry.
	MaxRetries *int

	// JSONResponse requires the returned text to parse as valid JSON. The
	// gateway extracts and repairs the provider's reply as needed, or fails.
	JSONResponse bool

	// Temperature is the sampling temperature. Nil uses the gateway default.
	Temperature *float64
}

// LLMClient interface - Output port
// Defines what the application needs from the language-model provider:
// a single prompted completion with bounded retry. Retries sleep between
// attempts; a caller abandoning the context cannot interrupt a sleep that
// is already in progress, only the HTTP call itself.
type LLMClient interface {
	// Complete sends the prompt and returns the model's trimmed reply text.
	// After exhausting retries it fails with a domain.BotError of kind
	// LLM_ERROR carrying the last underlying error and the attempt count.
	Complete(ctx context.Context, prompt string, options CompletionOptions) (string, error)
}
