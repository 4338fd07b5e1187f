package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/repository"
)

const exportFormatVersion = 1

// DeckExport is the JSON envelope written by Export and read by ImportJSON.
type DeckExport struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Categories []entity.Category  `json:"categories"`
	Cards      []entity.Flashcard `json:"cards"`
}

// DeckUsecase manages the flashcard collection around practice sessions:
// creating cards, counting what is due, and moving whole decks in and out.
type DeckUsecase interface {
	AddCard(ctx context.Context, word, translation, pronunciation, category string) (*entity.Flashcard, error)
	ListCards(ctx context.Context, categoryID string) ([]entity.Flashcard, error)
	DueCounts(ctx context.Context) (map[entity.Skill]int, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	Export(ctx context.Context, w io.Writer) error
	ImportJSON(ctx context.Context, r io.Reader) (int, error)
	ImportXLSX(ctx context.Context, path string) (int, error)
}

// NewDeckUsecase wires the repositories with default behaviour.
func NewDeckUsecase(cards repository.CardRepository, categories repository.CategoryRepository, scheduler *ReviewScheduler) DeckUsecase {
	return &deckUsecase{
		cards:      cards,
		categories: categories,
		scheduler:  scheduler,
		clock:      time.Now,
	}
}

type deckUsecase struct {
	cards      repository.CardRepository
	categories repository.CategoryRepository
	scheduler  *ReviewScheduler
	clock      func() time.Time
}

func (u *deckUsecase) AddCard(ctx context.Context, word, translation, pronunciation, category string) (*entity.Flashcard, error) {
	if strings.TrimSpace(word) == "" || strings.TrimSpace(translation) == "" {
		return nil, entity.ErrInvalidCardText
	}

	categoryID, err := u.ensureCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	card := &entity.Flashcard{
		ID:            uuid.NewString(),
		Word:          word,
		Translation:   translation,
		Pronunciation: pronunciation,
		CategoryID:    categoryID,
	}
	card.Normalize(u.clock())
	return u.cards.Create(ctx, card)
}

func (u *deckUsecase) ListCards(ctx context.Context, categoryID string) ([]entity.Flashcard, error) {
	return u.cards.List(ctx, &repository.ListCardQuery{CategoryID: categoryID})
}

func (u *deckUsecase) DueCounts(ctx context.Context) (map[entity.Skill]int, error) {
	today := u.scheduler.Today()
	counts := make(map[entity.Skill]int, len(entity.Skills))
	for _, skill := range entity.Skills {
		due, err := u.cards.ListDue(ctx, skill, today)
		if err != nil {
			return nil, fmt.Errorf("list due %s cards: %w", skill, err)
		}
		counts[skill] = len(due)
	}
	return counts, nil
}

func (u *deckUsecase) Categories(ctx context.Context) ([]entity.Category, error) {
	return u.categories.List(ctx)
}

// Export writes the whole collection as indented JSON.
func (u *deckUsecase) Export(ctx context.Context, w io.Writer) error {
	cards, err := u.cards.List(ctx, &repository.ListCardQuery{})
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}
	categories, err := u.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	export := DeckExport{
		Version:    exportFormatVersion,
		ExportedAt: u.clock(),
		Categories: categories,
		Cards:      cards,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

// ImportJSON restores a previously exported collection. Cards that already
// exist are skipped; the count of newly created cards is returned.
func (u *deckUsecase) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var export DeckExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return 0, fmt.Errorf("decode deck export: %w", err)
	}

	for i := range export.Categories {
		category := export.Categories[i]
		if category.ID == "" {
			category.ID = uuid.NewString()
		}
		if _, err := u.categories.Create(ctx, &category); err != nil && !errors.Is(err, entity.ErrDuplicateCategory) {
			return 0, fmt.Errorf("import category %q: %w", category.Name, err)
		}
	}

	created := 0
	now := u.clock()
	for i := range export.Cards {
		card := export.Cards[i]
		if card.ID == "" {
			card.ID = uuid.NewString()
		}
		card.Normalize(now)
		if _, err := u.cards.Create(ctx, &card); err != nil {
			if errors.Is(err, entity.ErrDuplicateCard) {
				continue
			}
			return created, fmt.Errorf("import card %q: %w", card.Word, err)
		}
		created++
	}
	return created, nil
}

// ImportXLSX reads cards from the first sheet of a spreadsheet laid out as
// word | translation | pronunciation | category, with a header row.
func (u *deckUsecase) ImportXLSX(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return 0, nil
	}

	created := 0
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		word := strings.TrimSpace(row[0])
		translation := strings.TrimSpace(row[1])
		if word == "" || translation == "" {
			continue
		}
		pronunciation := ""
		if len(row) > 2 {
			pronunciation = strings.TrimSpace(row[2])
		}
		category := ""
		if len(row) > 3 {
			category = strings.TrimSpace(row[3])
		}
		if _, err := u.AddCard(ctx, word, translation, pronunciation, category); err != nil {
			if errors.Is(err, entity.ErrDuplicateCard) {
				continue
			}
			return created, fmt.Errorf("import row %q: %w", word, err)
		}
		created++
	}
	return created, nil
}

// ensureCategory resolves a category name to its id, creating it on first
// use. An empty name means uncategorised.
func (u *deckUsecase) ensureCategory(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	existing, err := u.categories.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("find category %q: %w", name, err)
	}
	if existing != nil {
		return existing.ID, nil
	}
	created, err := u.categories.Create(ctx, &entity.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: u.clock(),
	})
	if err != nil {
		return "", fmt.Errorf("create category %q: %w", name, err)
	}
	return created.ID, nil
}
