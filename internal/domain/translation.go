package domain

// ResultType type - Kind of outcome the translation pipeline produced
type ResultType string

const (
	// ResultTypeLanguageSetup - The input configured the chat's languages
	ResultTypeLanguageSetup ResultType = "language_setup"
	// ResultTypeTranslation - The input was translated to the chat's targets
	ResultTypeTranslation ResultType = "translation"
)

// IncomingMessage struct - Inbound text from the chat transport
type IncomingMessage struct {
	ChatID          string
	UserID          string
	UserDisplayName string
	Text            string
}

// TargetTranslation struct - Per-target outcome of one translation pass.
// Skipped targets carry the original text untouched because their code
// matched the detected source language.
type TargetTranslation struct {
	Language Language `json:"language"`
	Text     string   `json:"text"`
	Skipped  bool     `json:"skipped"`
}

// TranslationResult struct - Transient pipeline result envelope, either a
// language_setup outcome or a translation outcome. Never persisted.
type TranslationResult struct {
	Type           ResultType          `json:"type"`
	Message        string              `json:"message,omitempty"`
	Languages      LanguageList        `json:"languages,omitempty"`
	SourceLanguage string              `json:"sourceLanguage,omitempty"`
	Translations   []TargetTranslation `json:"translations,omitempty"`
}
