package repository

import (
	"context"

	"github.com/eslsoft/chindospeak/internal/entity"
)

// ListCardQuery holds parameters for listing flashcards.
type ListCardQuery struct {
	CategoryID string
}

// CardRepository abstracts persistence for flashcards to keep usecases
// storage agnostic.
type CardRepository interface {
	Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error)
	GetByID(ctx context.Context, id string) (*entity.Flashcard, error)
	List(ctx context.Context, query *ListCardQuery) ([]entity.Flashcard, error)
	// ListDue returns cards whose track for the given skill is due on the
	// ISO date, i.e. next_review <= today.
	ListDue(ctx context.Context, skill entity.Skill, today string) ([]entity.Flashcard, error)
	// UpdateSkill writes one track's level and next review date without
	// touching the rest of the card.
	UpdateSkill(ctx context.Context, id string, skill entity.Skill, level int, nextReview string) error
	Delete(ctx context.Context, id string) error
}
