package entity

import "strings"

// Language identifies a target language supported by the app.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageChinese     Language = "chinese"
	LanguageIndonesian  Language = "indonesian"
)

// NormalizeLanguage ensures the language falls back to a supported value (defaults to Chinese).
func NormalizeLanguage(lang Language) Language {
	switch lang {
	case LanguageChinese, LanguageIndonesian:
		return lang
	default:
		return LanguageChinese
	}
}

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "chinese", "zh", "zh-cn", "cmn":
		return LanguageChinese
	case "indonesian", "id", "id-id":
		return LanguageIndonesian
	default:
		return LanguageUnspecified
	}
}

// Code returns the raw string code.
func (l Language) Code() string { return string(l) }

// SpeechTag returns the BCP 47 tag used when synthesizing or recognizing
// target-language speech.
func (l Language) SpeechTag() string {
	switch l {
	case LanguageIndonesian:
		return "id-ID"
	default:
		return "zh-CN"
	}
}

// EnglishSpeechTag is the tag used for the gloss side of a card.
const EnglishSpeechTag = "en-US"
