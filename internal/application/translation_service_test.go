package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"translation-bot/internal/domain"
	"translation-bot/internal/ports/output"
)

// mockLLMClient replays scripted replies in order and records the prompts
// it was asked to complete.
type mockLLMClient struct {
	replies []string
	errs    []error
	prompts []string
}

func (m *mockLLMClient) Complete(_ context.Context, prompt string, _ output.CompletionOptions) (string, error) {
	index := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if index < len(m.errs) && m.errs[index] != nil {
		return "", m.errs[index]
	}
	if index < len(m.replies) {
		return m.replies[index], nil
	}
	return "", errors.New("mock exhausted")
}

func configuredSession(chatID string, codes ...string) *domain.ChatSession {
	session := domain.NewChatSession(chatID)
	names := map[string]string{"EN": "English", "RU": "Russian", "SR": "Serbian", "JA": "Japanese"}
	for _, code := range codes {
		session.SelectedLanguages = append(session.SelectedLanguages, domain.Language{Code: code, Name: names[code]})
	}
	return session
}

// TestSetupLanguagesPersistsSelection tests the happy path: a clean JSON
// array reply configures the chat
func TestSetupLanguagesPersistsSelection(t *testing.T) {
	store := newMockSessionStore()
	llm := &mockLLMClient{replies: []string{
		`[{"code": "EN", "name": "English"}, {"code": "RU", "name": "Russian"}]`,
	}}
	service := NewTranslationService(llm, store)

	languages, err := service.SetupLanguages(context.Background(), "chat-1", "English and Russian")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(languages) != 2 || languages[0].Code != "EN" || languages[1].Code != "RU" {
		t.Errorf("unexpected languages: %v", languages)
	}

	session, _ := store.Get("chat-1")
	if !session.IsConfigured() {
		t.Error("expected chat configured after setup")
	}
}

// TestSetupLanguagesExtractsArrayFromProse tests that an array embedded in
// surrounding chatter is still picked up
func TestSetupLanguagesExtractsArrayFromProse(t *testing.T) {
	llm := &mockLLMClient{replies: []string{
		"Sure! Here are the languages:\n[{\"code\": \"EN\", \"name\": \"English\"}, {\"code\": \"SR\", \"name\": \"Serbian\"}]\nLet me know if you need more.",
	}}
	service := NewTranslationService(llm, newMockSessionStore())

	languages, err := service.SetupLanguages(context.Background(), "chat-1", "english, serbian")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := languages.Codes(); len(got) != 2 || got[0] != "EN" || got[1] != "SR" {
		t.Errorf("unexpected codes: %v", got)
	}
}

// TestSetupLanguagesUnwrapsWrapperObject tests the envelope tolerance:
// a {"languages": [...]} wrapper still yields the array
func TestSetupLanguagesUnwrapsWrapperObject(t *testing.T) {
	llm := &mockLLMClient{replies: []string{
		`{"languages": [{"code": "EN", "name": "English"}, {"code": "JA", "name": "Japanese"}]}`,
	}}
	service := NewTranslationService(llm, newMockSessionStore())

	languages, err := service.SetupLanguages(context.Background(), "chat-1", "english and japanese")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(languages) != 2 {
		t.Errorf("expected 2 languages, got %d", len(languages))
	}
}

// TestSetupLanguagesRejectsCountOutOfBounds tests the 2-3 selection bound,
// with the count named in the user-facing message
func TestSetupLanguagesRejectsCountOutOfBounds(t *testing.T) {
	store := newMockSessionStore()
	llm := &mockLLMClient{replies: []string{
		`[{"code": "EN", "name": "English"}]`,
	}}
	service := NewTranslationService(llm, store)

	_, err := service.SetupLanguages(context.Background(), "chat-1", "english only")
	if err == nil {
		t.Fatal("expected error for single language")
	}
	botErr, ok := domain.AsBotError(err)
	if !ok || botErr.Code != domain.ErrCodeLanguageSetup {
		t.Fatalf("expected LANGUAGE_SETUP_ERROR, got %v", err)
	}
	if !strings.Contains(botErr.Message, "1 languages") {
		t.Errorf("expected selected count in message, got %q", botErr.Message)
	}

	session, _ := store.Get("chat-1")
	if session.IsConfigured() {
		t.Error("expected chat to stay unconfigured after failed setup")
	}
}

// TestSetupLanguagesRejectsInvalidCode tests per-entry validation: a
// lowercase or long code fails setup
func TestSetupLanguagesRejectsInvalidCode(t *testing.T) {
	llm := &mockLLMClient{replies: []string{
		`[{"code": "en", "name": "English"}, {"code": "RU", "name": "Russian"}]`,
	}}
	service := NewTranslationService(llm, newMockSessionStore())

	_, err := service.SetupLanguages(context.Background(), "chat-1", "english, russian")
	if err == nil {
		t.Fatal("expected validation error for lowercase code")
	}
	botErr, ok := domain.AsBotError(err)
	if !ok || botErr.Code != domain.ErrCodeLanguageSetup {
		t.Errorf("expected LANGUAGE_SETUP_ERROR, got %v", err)
	}
}

// TestProcessTranslationUnconfiguredRunsSetup tests phase routing: an
// unconfigured chat treats input as a setup request
func TestProcessTranslationUnconfiguredRunsSetup(t *testing.T) {
	llm := &mockLLMClient{replies: []string{
		`[{"code": "EN", "name": "English"}, {"code": "RU", "name": "Russian"}]`,
	}}
	service := NewTranslationService(llm, newMockSessionStore())

	result, err := service.ProcessTranslation(context.Background(), "chat-1", "English and Russian please")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != domain.ResultTypeLanguageSetup {
		t.Errorf("expected language_setup result, got %s", result.Type)
	}
	if result.Message != "Languages have been set up successfully!" {
		t.Errorf("unexpected setup message: %q", result.Message)
	}
}

// TestProcessTranslationSkipsSourceLanguage tests that the target matching
// the detected source is passed through byte-identical with no provider
// call, while the others are translated in stored order
func TestProcessTranslationSkipsSourceLanguage(t *testing.T) {
	store := newMockSessionStore()
	store.Set(configuredSession("chat-1", "EN", "RU", "SR"))

	llm := &mockLLMClient{replies: []string{
		"EN",           // detection
		"Привет, мир!", // RU
		"Здраво свете!", // SR
	}}
	service := NewTranslationService(llm, store)

	result, err := service.ProcessTranslation(context.Background(), "chat-1", "Hello, world!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != domain.ResultTypeTranslation {
		t.Fatalf("expected translation result, got %s", result.Type)
	}
	if result.SourceLanguage != "EN" {
		t.Errorf("expected source EN, got %s", result.SourceLanguage)
	}
	if len(result.Translations) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(result.Translations))
	}

	en := result.Translations[0]
	if !en.Skipped || en.Text != "Hello, world!" {
		t.Errorf("expected EN skipped with original text, got %+v", en)
	}
	if result.Translations[1].Skipped || result.Translations[1].Text != "Привет, мир!" {
		t.Errorf("unexpected RU target: %+v", result.Translations[1])
	}
	if result.Translations[2].Skipped || result.Translations[2].Text != "Здраво свете!" {
		t.Errorf("unexpected SR target: %+v", result.Translations[2])
	}

	// 1 detection call + 2 translation calls; no call for the skipped target
	if len(llm.prompts) != 3 {
		t.Errorf("expected 3 provider calls, got %d", len(llm.prompts))
	}
}

// TestProcessTranslationAbortsOnTargetFailure tests all-or-nothing: a
// failure on any target drops the whole pass
func TestProcessTranslationAbortsOnTargetFailure(t *testing.T) {
	store := newMockSessionStore()
	store.Set(configuredSession("chat-1", "EN", "RU"))

	llm := &mockLLMClient{
		replies: []string{"SR", ""},
		errs:    []error{nil, errors.New("provider down")},
	}
	service := NewTranslationService(llm, store)

	_, err := service.ProcessTranslation(context.Background(), "chat-1", "Здраво")
	if err == nil {
		t.Fatal("expected error when a target translation fails")
	}
	botErr, ok := domain.AsBotError(err)
	if !ok || botErr.Code != domain.ErrCodeTranslation {
		t.Errorf("expected TRANSLATION_ERROR, got %v", err)
	}
}

// TestDetectSourceLanguageRejectsMalformedCode tests the strict reply
// format: the first two characters must be an uppercase code
func TestDetectSourceLanguageRejectsMalformedCode(t *testing.T) {
	for _, reply := range []string{"english", "e", "1A", "en"} {
		llm := &mockLLMClient{replies: []string{reply}}
		service := NewTranslationService(llm, newMockSessionStore())

		_, err := service.DetectSourceLanguage(context.Background(), "some text")
		if err == nil {
			t.Errorf("expected detection error for reply %q", reply)
			continue
		}
		botErr, ok := domain.AsBotError(err)
		if !ok || botErr.Code != domain.ErrCodeLanguageDetection {
			t.Errorf("expected LANGUAGE_DETECTION_ERROR for %q, got %v", reply, err)
		}
	}
}

// TestDetectSourceLanguageTakesCodePrefix tests that a verbose reply
// starting with a valid code is accepted
func TestDetectSourceLanguageTakesCodePrefix(t *testing.T) {
	llm := &mockLLMClient{replies: []string{"EN (English)"}}
	service := NewTranslationService(llm, newMockSessionStore())

	code, err := service.DetectSourceLanguage(context.Background(), "Hello there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "EN" {
		t.Errorf("expected EN, got %s", code)
	}
}

// TestClearLanguagesKeepsAuthentication tests that clearing returns the
// chat to setup phase without dropping the auth flag
func TestClearLanguagesKeepsAuthentication(t *testing.T) {
	store := newMockSessionStore()
	session := configuredSession("chat-1", "EN", "RU")
	session.Authenticated = true
	store.Set(session)

	service := NewTranslationService(&mockLLMClient{}, store)
	if err := service.ClearLanguages("chat-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := store.Get("chat-1")
	if got.IsConfigured() {
		t.Error("expected languages cleared")
	}
	if !got.Authenticated {
		t.Error("expected auth flag preserved across clear")
	}
}
