package models

import "strings"

// Language represents the language variant of a scraped item
type Language int

const (
	LanguageUnknown Language = iota
	LanguageTamil
	LanguageTamilDubbed
	LanguageTelugu
	LanguageHindi
	LanguageMalayalam
	LanguageKannada
	LanguageEnglish
)

// String returns the string representation of the language variant
func (l Language) String() string {
	switch l {
	case LanguageTamil:
		return "tamil"
	case LanguageTamilDubbed:
		return "tamil-dubbed"
	case LanguageTelugu:
		return "telugu"
	case LanguageHindi:
		return "hindi"
	case LanguageMalayalam:
		return "malayalam"
	case LanguageKannada:
		return "kannada"
	case LanguageEnglish:
		return "english"
	default:
		return "unknown"
	}
}

// ParseLanguage converts a language string to Language enum
func ParseLanguage(languageStr string) Language {
	switch strings.ToLower(languageStr) {
	case "tamil":
		return LanguageTamil
	case "tamil-dubbed", "tamildubbed", "dubbed":
		return LanguageTamilDubbed
	case "telugu":
		return LanguageTelugu
	case "hindi":
		return LanguageHindi
	case "malayalam":
		return LanguageMalayalam
	case "kannada":
		return LanguageKannada
	case "english":
		return LanguageEnglish
	default:
		return LanguageUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (l Language) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (l *Language) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*l = ParseLanguage(str)
	return nil
}
