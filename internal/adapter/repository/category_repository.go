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

type categoryRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
}

func (r categoryRow) toEntity() entity.Category {
	return entity.Category{ID: r.ID, Name: r.Name, Color: r.Color, CreatedAt: r.CreatedAt}
}

type categoryRepository struct{ db *sqlx.DB }

// NewCategoryRepository creates a sqlite-backed category repository.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		category.ID, category.Name, category.Color, category.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, entity.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	created := *category
	return &created, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toEntity())
	}
	return categories, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var row categoryRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM categories WHERE name = ? COLLATE NOCASE`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	category := row.toEntity()
	return &category, nil
}
