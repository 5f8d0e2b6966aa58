package domain

import "errors"

// ErrorCode type - Machine-readable kind of a bot error
type ErrorCode string

const (
	// ErrCodeBot const - Generic bot failure
	ErrCodeBot ErrorCode = "TRANSLATION_BOT_ERROR"
	// ErrCodeLanguageSetup const - Malformed or out-of-range language setup
	ErrCodeLanguageSetup ErrorCode = "LANGUAGE_SETUP_ERROR"
	// ErrCodeLanguageDetection const - Detection reply was not a valid code
	ErrCodeLanguageDetection ErrorCode = "LANGUAGE_DETECTION_ERROR"
	// ErrCodeTranslation const - Failure inside the translation phase
	ErrCodeTranslation ErrorCode = "TRANSLATION_ERROR"
	// ErrCodeSession const - Session state violation
	ErrCodeSession ErrorCode = "SESSION_ERROR"
	// ErrCodeLLM const - LLM gateway retry exhaustion
	ErrCodeLLM ErrorCode = "LLM_ERROR"
	// ErrCodeValidation const - Schema validation failure
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// BotError struct - Base error carrying a message, a kind code and a
// severity class. 4xx errors are user-correctable and surfaced verbatim,
// 5xx errors are internal and rendered generically.
type BotError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Err        error // wrapped cause, never shown to the end user
}

// Error func
func (e *BotError) Error() string {
	return e.Message
}

// Unwrap func
func (e *BotError) Unwrap() error {
	return e.Err
}

// UserCorrectable reports whether the error message is safe to surface verbatim
func (e *BotError) UserCorrectable() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// NewLanguageSetupError func
func NewLanguageSetupError(message string, cause error) *BotError {
	return &BotError{Code: ErrCodeLanguageSetup, Message: message, StatusCode: 400, Err: cause}
}

// NewLanguageDetectionError func
func NewLanguageDetectionError(message string, cause error) *BotError {
	return &BotError{Code: ErrCodeLanguageDetection, Message: message, StatusCode: 400, Err: cause}
}

// NewTranslationError func
func NewTranslationError(message string, cause error) *BotError {
	return &BotError{Code: ErrCodeTranslation, Message: message, StatusCode: 500, Err: cause}
}

// NewSessionError func
func NewSessionError(message string, cause error) *BotError {
	return &BotError{Code: ErrCodeSession, Message: message, StatusCode: 400, Err: cause}
}

// NewLLMError func
func NewLLMError(message string, cause error) *BotError {
	return &BotError{Code: ErrCodeLLM, Message: message, StatusCode: 500, Err: cause}
}

// NewValidationError func
func NewValidationError(message string, cause error) *BotError {
	return &BotError{Code: ErrCodeValidation, Message: message, StatusCode: 400, Err: cause}
}

// AsBotError extracts a BotError from an error chain
func AsBotError(err error) (*BotError, bool) {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr, true
	}
	return nil, false
}
