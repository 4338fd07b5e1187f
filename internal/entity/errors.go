package entity

import "errors"

// Domain errors for flashcards and practice sessions.
var (
	ErrCardNotFound      = errors.New("flashcard not found")
	ErrInvalidCardText   = errors.New("flashcard word and translation are required")
	ErrDuplicateCard     = errors.New("flashcard already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrUnknownSkill      = errors.New("unknown skill")
	ErrUnknownDirection  = errors.New("unknown direction")
	ErrSessionFinished   = errors.New("session already finished")
	ErrSessionStopped    = errors.New("session stopped")
	ErrAnswerInFlight    = errors.New("previous answer still being graded")
	ErrSpeechUnavailable = errors.New("speech recognition unavailable")
)
