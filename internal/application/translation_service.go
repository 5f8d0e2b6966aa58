package application

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"translation-bot/internal/domain"
	"translation-bot/internal/ports/input"
	"translation-bot/internal/ports/output"
	"translation-bot/pkg/validator"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure TranslationService implements the input port
var _ input.TranslationService = (*TranslationService)(nil)

const languageSetupPrompt = `
You are a language extraction assistant. Your task is to identify ALL languages a user wants to use and return them as a JSON array.

CRITICAL REQUIREMENTS:
1. Extract ALL languages mentioned by the user (not just one)
2. Always return a JSON array, even for one language
3. Each language object must have: {"code": "XX", "name": "Language"}
4. Use two-letter ISO 639-1 codes in uppercase
5. Return ONLY the JSON array, no other text

Examples:
User: "English, Russian, Serbian"
Response: [{"code": "EN", "name": "English"}, {"code": "RU", "name": "Russian"}, {"code": "SR", "name": "Serbian"}]

User: "I want to use Russian, English, and Japanese"
Response: [{"code": "RU", "name": "Russian"}, {"code": "EN", "name": "English"}, {"code": "JA", "name": "Japanese"}]

User: "Spanish and French"
Response: [{"code": "ES", "name": "Spanish"}, {"code": "FR", "name": "French"}]

User input: "%s"
JSON array:`

const languageDetectionPrompt = `
You are a language detection assistant. Your task is to identify the language of the provided text.

Instructions:
1. Identify the language of the text provided by the user
2. Respond ONLY with the two-letter ISO 639-1 language code in uppercase
3. Do not include any other text or explanations

Examples:
Text: "Hello, how are you?"
Response: EN

Text: "Привет, как дела?"
Response: RU

Text: "안녕하세요, 어떻게 지내세요?"
Response: KO

Text: "%s"
Response:`

const translatePrompt = `
You are a professional translator. Your task is to translate the provided text to the specified language.

Instructions:
1. Translate the text to the language with code: %s
2. Output ONLY the translated text
3. Do not add the language code prefix or any other explanations
4. Preserve the original meaning and tone as closely as possible

Text to translate: "%s"
Translated text:`

var (
	jsonArrayRe      = regexp.MustCompile(`(?s)\[.*\]`)
	languageCodeRe   = regexp.MustCompile(`^[A-Z]{2}$`)
	setupMaxRetries  = 2
	setupTemperature = 0.0
)

// unwrapStrategy tries to pull the language array out of one known wrapper
// shape the provider sometimes returns instead of a bare array.
type unwrapStrategy struct {
	name  string
	apply func(obj map[string]json.RawMessage) (json.RawMessage, bool)
}

func unwrapKey(key string) unwrapStrategy {
	return unwrapStrategy{
		name: "key:" + key,
		apply: func(obj map[string]json.RawMessage) (json.RawMessage, bool) {
			raw, ok := obj[key]
			return raw, ok
		},
	}
}

// unwrapStrategies is the ordered list of envelope shapes tolerated from
// the provider: wrapper objects keyed languages/result/data/response, then
// a single language object auto-wrapped into a one-element array.
var unwrapStrategies = []unwrapStrategy{
	unwrapKey("languages"),
	unwrapKey("result"),
	unwrapKey("data"),
	unwrapKey("response"),
	{
		name: "single-language-object",
		apply: func(obj map[string]json.RawMessage) (json.RawMessage, bool) {
			_, hasCode := obj["code"]
			_, hasName := obj["name"]
			if !hasCode || !hasName {
				return nil, false
			}
			var b strings.Builder
			b.WriteByte('[')
			raw, _ := json.Marshal(obj)
			b.Write(raw)
			b.WriteByte(']')
			return json.RawMessage(b.String()), true
		},
	},
}

// TranslationService struct - Application service implementing the
// two-phase pipeline: language setup while a chat is unconfigured,
// detection plus per-target translation once configured.
type TranslationService struct {
	llm      output.LLMClient
	sessions output.SessionStore
	validate validator.Validator
}

// NewTranslationService func - Creates new translation service
func NewTranslationService(llm output.LLMClient, sessions output.SessionStore) *TranslationService {
	return &TranslationService{
		llm:      llm,
		sessions: sessions,
		validate: validator.New(),
	}
}

// SetupLanguages extracts every language mentioned in the input, validates
// the 2-3 count bound and persists the list as the chat's selected
// languages. Failure leaves the chat unconfigured.
func (s *TranslationService) SetupLanguages(ctx context.Context, chatID, userInput string) (domain.LanguageList, error) {
	prompt := fmt.Sprintf(languageSetupPrompt, userInput)

	temperature := setupTemperature
	maxRetries := setupMaxRetries
	response, err := s.llm.Complete(ctx, prompt, output.CompletionOptions{
		Temperature: &temperature,
		MaxRetries:  &maxRetries,
	})
	if err != nil {
		return nil, domain.NewLanguageSetupError(fmt.Sprintf("Failed to setup languages: %v", err), err)
	}

	languages, err := s.parseLanguages(response)
	if err != nil {
		logrus.Errorf("Failed to parse languages from LLM response: %v (response: %s)", err, response)
		return nil, domain.NewLanguageSetupError(fmt.Sprintf("Failed to setup languages: %v", err), err)
	}

	if len(languages) < domain.MinSelectedLanguages || len(languages) > domain.MaxSelectedLanguages {
		return nil, domain.NewLanguageSetupError(
			fmt.Sprintf("Please select exactly 2-3 languages for translation. You selected %d languages.", len(languages)), nil)
	}

	session, err := s.sessions.Get(chatID)
	if err != nil {
		return nil, domain.NewSessionError("Failed to load chat session", err)
	}
	session.SelectedLanguages = languages
	if err := s.sessions.Set(session); err != nil {
		return nil, domain.NewSessionError("Failed to persist chat session", err)
	}

	logrus.Infof("Languages configured for chat %s: %v", chatID, languages.Codes())
	return languages, nil
}

// parseLanguages turns a free-text provider reply into a validated language
// list, tolerating the known envelope shapes.
func (s *TranslationService) parseLanguages(response string) (domain.LanguageList, error) {
	// Prefer the first array literal; fall back to the whole reply
	candidate := jsonArrayRe.FindString(response)
	if candidate == "" {
		candidate = response
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response from provider: %w", err)
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("invalid JSON object from provider: %w", err)
		}
		unwrapped := false
		for _, strategy := range unwrapStrategies {
			if inner, ok := strategy.apply(obj); ok {
				raw = inner
				unwrapped = true
				break
			}
		}
		if !unwrapped {
			return nil, fmt.Errorf("provider response is not a language array")
		}
	}

	var languages domain.LanguageList
	if err := json.Unmarshal(raw, &languages); err != nil {
		return nil, fmt.Errorf("language array has unexpected shape: %w", err)
	}

	for _, lang := range languages {
		if err := s.validate.ValidateStruct(lang); err != nil {
			return nil, fmt.Errorf("language %q failed validation: %w", lang.Code, err)
		}
	}

	return languages, nil
}

// DetectSourceLanguage identifies the language of the given text, expecting
// a reply whose first two characters are an uppercase ISO 639-1 code.
func (s *TranslationService) DetectSourceLanguage(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(languageDetectionPrompt, text)

	response, err := s.llm.Complete(ctx, prompt, output.CompletionOptions{})
	if err != nil {
		return "", domain.NewLanguageDetectionError(fmt.Sprintf("Failed to detect source language: %v", err), err)
	}

	if len(response) < 2 || !languageCodeRe.MatchString(response[:2]) {
		return "", domain.NewLanguageDetectionError(
			fmt.Sprintf("Failed to detect source language: invalid language code format in %q", response), nil)
	}

	return response[:2], nil
}

// TranslateText translates text to the target language code
func (s *TranslationService) TranslateText(ctx context.Context, text, targetCode string) (string, error) {
	prompt := fmt.Sprintf(translatePrompt, targetCode, text)

	response, err := s.llm.Complete(ctx, prompt, output.CompletionOptions{})
	if err != nil {
		return "", domain.NewTranslationError(fmt.Sprintf("Failed to translate text: %v", err), err)
	}
	return response, nil
}

// ProcessTranslation routes input through the chat's current phase. An
// unconfigured chat treats the input as a language-setup request; a
// configured chat detects the source language and translates to every
// selected target in stored order, passing same-language targets through
// unchanged without a provider call. Any per-target failure aborts the
// whole pass with no partial results.
func (s *TranslationService) ProcessTranslation(ctx context.Context, chatID, userInput string) (*domain.TranslationResult, error) {
	session, err := s.sessions.Get(chatID)
	if err != nil {
		return nil, domain.NewSessionError("Failed to load chat session", err)
	}

	if !session.IsConfigured() {
		languages, err := s.SetupLanguages(ctx, chatID, userInput)
		if err != nil {
			return nil, err
		}
		return &domain.TranslationResult{
			Type:      domain.ResultTypeLanguageSetup,
			Message:   "Languages have been set up successfully!",
			Languages: languages,
		}, nil
	}

	sourceLanguage, err := s.DetectSourceLanguage(ctx, userInput)
	if err != nil {
		return nil, err
	}

	translations := make([]domain.TargetTranslation, 0, len(session.SelectedLanguages))
	for _, language := range session.SelectedLanguages {
		// Same-language targets skip the provider call entirely
		if language.Code == sourceLanguage {
			translations = append(translations, domain.TargetTranslation{
				Language: language,
				Text:     userInput,
				Skipped:  true,
			})
			continue
		}

		translated, err := s.TranslateText(ctx, userInput, language.Code)
		if err != nil {
			return nil, domain.NewTranslationError(fmt.Sprintf("Failed to process translation: %v", err), err)
		}
		translations = append(translations, domain.TargetTranslation{
			Language: language,
			Text:     translated,
			Skipped:  false,
		})
	}

	return &domain.TranslationResult{
		Type:           domain.ResultTypeTranslation,
		SourceLanguage: sourceLanguage,
		Translations:   translations,
	}, nil
}

// ClearLanguages returns the chat to the unconfigured phase while keeping
// its authentication flag.
func (s *TranslationService) ClearLanguages(chatID string) error {
	session, err := s.sessions.Get(chatID)
	if err != nil {
		return domain.NewSessionError("Failed to load chat session", err)
	}
	session.SelectedLanguages = domain.LanguageList{}
	if err := s.sessions.Set(session); err != nil {
		return domain.NewSessionError("Failed to persist chat session", err)
	}
	return nil
}
