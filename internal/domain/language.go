package domain

// Language bounds for a chat's translation setup
const (
	// MinSelectedLanguages const
	MinSelectedLanguages = 2
	// MaxSelectedLanguages const
	MaxSelectedLanguages = 3
)

// Language struct - Immutable language value with a two-letter ISO 639-1 code
type Language struct {
	Code string `json:"code" validate:"required,len=2,uppercase"`
	Name string `json:"name" validate:"required"`
}

// LanguageList type - Ordered list of selected languages for a chat
type LanguageList []Language

// Codes returns the ordered language codes of the list
func (l LanguageList) Codes() []string {
	codes := make([]string, len(l))
	for i, lang := range l {
		codes[i] = lang.Code
	}
	return codes
}
