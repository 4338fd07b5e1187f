package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/repository"
)

type reviewRow struct {
	ID         string    `db:"id"`
	CardID     string    `db:"card_id"`
	Skill      string    `db:"skill"`
	Correct    bool      `db:"correct"`
	ReviewedAt time.Time `db:"reviewed_at"`
}

type reviewLogRepository struct{ db *sqlx.DB }

// NewReviewLogRepository creates a sqlite-backed review log.
func NewReviewLogRepository(db *sqlx.DB) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Append(ctx context.Context, record *entity.ReviewRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_log (id, card_id, skill, correct, reviewed_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.CardID, string(record.Skill), record.Correct, record.ReviewedAt)
	if err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	return nil
}

func (r *reviewLogRepository) ListSince(ctx context.Context, from time.Time) ([]entity.ReviewRecord, error) {
	var rows []reviewRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM review_log WHERE reviewed_at >= ? ORDER BY reviewed_at, id`, from)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	records := make([]entity.ReviewRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.ReviewRecord{
			ID:         row.ID,
			CardID:     row.CardID,
			Skill:      entity.Skill(row.Skill),
			Correct:    row.Correct,
			ReviewedAt: row.ReviewedAt,
		})
	}
	return records, nil
}
