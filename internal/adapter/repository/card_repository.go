package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/repository"
)

type cardRow struct {
	ID                  string    `db:"id"`
	Word                string    `db:"word"`
	Translation         string    `db:"translation"`
	Pronunciation       string    `db:"pronunciation"`
	CategoryID          string    `db:"category_id"`
	ReadingLevel        int       `db:"reading_level"`
	ReadingNextReview   string    `db:"reading_next_review"`
	ListeningLevel      int       `db:"listening_level"`
	ListeningNextReview string    `db:"listening_next_review"`
	SpeakingLevel       int       `db:"speaking_level"`
	SpeakingNextReview  string    `db:"speaking_next_review"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r cardRow) toEntity() entity.Flashcard {
	return entity.Flashcard{
		ID:            r.ID,
		Word:          r.Word,
		Translation:   r.Translation,
		Pronunciation: r.Pronunciation,
		CategoryID:    r.CategoryID,
		Reading:       entity.SkillProgress{Level: r.ReadingLevel, NextReview: r.ReadingNextReview},
		Listening:     entity.SkillProgress{Level: r.ListeningLevel, NextReview: r.ListeningNextReview},
		Speaking:      entity.SkillProgress{Level: r.SpeakingLevel, NextReview: r.SpeakingNextReview},
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toCardRow(c *entity.Flashcard) cardRow {
	return cardRow{
		ID:                  c.ID,
		Word:                c.Word,
		Translation:         c.Translation,
		Pronunciation:       c.Pronunciation,
		CategoryID:          c.CategoryID,
		ReadingLevel:        c.Reading.Level,
		ReadingNextReview:   c.Reading.NextReview,
		ListeningLevel:      c.Listening.Level,
		ListeningNextReview: c.Listening.NextReview,
		SpeakingLevel:       c.Speaking.Level,
		SpeakingNextReview:  c.Speaking.NextReview,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// skillColumns maps a skill to its level and next review column names. The
// switch keeps column names out of query string interpolation.
func skillColumns(skill entity.Skill) (levelCol, dueCol string) {
	switch skill {
	case entity.SkillListening:
		return "listening_level", "listening_next_review"
	case entity.SkillSpeaking:
		return "speaking_level", "speaking_next_review"
	default:
		return "reading_level", "reading_next_review"
	}
}

type cardRepository struct{ db *sqlx.DB }

// NewCardRepository creates a sqlite-backed card repository.
func NewCardRepository(db *sqlx.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	row := toCardRow(card)
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO flashcards (
			id, word, translation, pronunciation, category_id,
			reading_level, reading_next_review,
			listening_level, listening_next_review,
			speaking_level, speaking_next_review,
			created_at, updated_at
		) VALUES (
			:id, :word, :translation, :pronunciation, :category_id,
			:reading_level, :reading_next_review,
			:listening_level, :listening_next_review,
			:speaking_level, :speaking_next_review,
			:created_at, :updated_at
		)`, row)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, entity.ErrDuplicateCard
		}
		return nil, fmt.Errorf("insert card: %w", err)
	}
	created := *card
	return &created, nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*entity.Flashcard, error) {
	var row cardRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM flashcards WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCardNotFound
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	card := row.toEntity()
	return &card, nil
}

func (r *cardRepository) List(ctx context.Context, query *repository.ListCardQuery) ([]entity.Flashcard, error) {
	q := `SELECT * FROM flashcards`
	args := []any{}
	if query != nil && query.CategoryID != "" {
		q += ` WHERE category_id = ?`
		args = append(args, query.CategoryID)
	}
	q += ` ORDER BY created_at, id`

	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	cards := make([]entity.Flashcard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, row.toEntity())
	}
	return cards, nil
}

func (r *cardRepository) ListDue(ctx context.Context, skill entity.Skill, today string) ([]entity.Flashcard, error) {
	_, dueCol := skillColumns(skill)
	q := fmt.Sprintf(`SELECT * FROM flashcards WHERE %s <= ? ORDER BY %s, id`, dueCol, dueCol)

	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, q, today); err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	cards := make([]entity.Flashcard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, row.toEntity())
	}
	return cards, nil
}

func (r *cardRepository) UpdateSkill(ctx context.Context, id string, skill entity.Skill, level int, nextReview string) error {
	levelCol, dueCol := skillColumns(skill)
	q := fmt.Sprintf(`UPDATE flashcards SET %s = ?, %s = ?, updated_at = ? WHERE id = ?`, levelCol, dueCol)
	res, err := r.db.ExecContext(ctx, q, level, nextReview, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	if affected == 0 {
		return entity.ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if affected == 0 {
		return entity.ErrCardNotFound
	}
	return nil
}
