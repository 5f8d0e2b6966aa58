package input

import (
	"context"

	"translation-bot/internal/domain"
)

// TranslationService interface - Input port (use case)
// The two-phase pipeline behind every inbound text: language setup while a
// chat is unconfigured, translation once languages are selected.
type TranslationService interface {
	// ProcessTranslation routes the input through the chat's current phase
	// and returns either a language_setup or a translation result.
	ProcessTranslation(ctx context.Context, chatID, userInput string) (*domain.TranslationResult, error)

	// SetupLanguages extracts 2-3 languages from free text and persists them
	// as the chat's selected languages.
	SetupLanguages(ctx context.Context, chatID, userInput string) (domain.LanguageList, error)

	// ClearLanguages returns the chat to the unconfigured phase while
	// preserving its authentication flag.
	ClearLanguages(chatID string) error
}
