package model

// Language is a supported output language for generated content.
type Language string

const (
	LanguageEnglish    Language = "English"
	LanguageSpanish    Language = "Spanish"
	LanguageVietnamese Language = "Vietnamese"
	LanguageMandarin   Language = "Mandarin"
	LanguageKorean     Language = "Korean"
)

// Languages lists every supported content language, in display order.
var Languages = []Language{
	LanguageEnglish,
	LanguageSpanish,
	LanguageVietnamese,
	LanguageMandarin,
	LanguageKorean,
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, lang := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// FunFactRequest is the payload for generating a localized fun fact.
type FunFactRequest struct {
	City     string `json:"city" binding:"required,min=1,max=120"`
	Language string `json:"language" binding:"required,oneof=English Spanish Vietnamese Mandarin Korean"`
}

// FAQAnswerRequest is the payload for answering one of the fixed FAQ entries.
type FAQAnswerRequest struct {
	Question string `json:"question" binding:"required,max=300"`
	Language string `json:"language" binding:"required,oneof=English Spanish Vietnamese Mandarin Korean"`
}
