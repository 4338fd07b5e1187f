package entity

import "strings"

// Direction controls which side of a card is prompted.
type Direction string

const (
	// DirectionWordToTranslation shows the target-language word and expects
	// the English gloss.
	DirectionWordToTranslation Direction = "word_to_translation"
	// DirectionTranslationToWord shows the gloss and expects the word.
	DirectionTranslationToWord Direction = "translation_to_word"
	// DirectionMixed alternates strictly between the two on every card.
	DirectionMixed Direction = "mixed"
)

// ParseDirection converts an arbitrary string into a supported Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word_to_translation", "word":
		return DirectionWordToTranslation, nil
	case "translation_to_word", "translation":
		return DirectionTranslationToWord, nil
	case "mixed", "":
		return DirectionMixed, nil
	default:
		return "", ErrUnknownDirection
	}
}

// SessionState is the lifecycle phase of a practice session.
type SessionState string

const (
	SessionIdle           SessionState = "idle"
	SessionPrompting      SessionState = "prompting"
	SessionAwaitingAnswer SessionState = "awaiting_answer"
	SessionGrading        SessionState = "grading"
	SessionFeedback       SessionState = "feedback"
	SessionFinished       SessionState = "finished"
)

// SessionTotals summarises one finished (or stopped) session.
type SessionTotals struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Skipped   int `json:"skipped"`
}
