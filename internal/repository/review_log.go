package repository

import (
	"context"
	"time"

	"github.com/eslsoft/chindospeak/internal/entity"
)

// ReviewLogRepository is the append-only record of graded answers.
type ReviewLogRepository interface {
	Append(ctx context.Context, record *entity.ReviewRecord) error
	// ListSince returns records reviewed at or after the given instant,
	// oldest first.
	ListSince(ctx context.Context, from time.Time) ([]entity.ReviewRecord, error)
}

// CategoryRepository stores the category list used to filter sessions.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	// FindByName returns (nil, nil) when no category has the name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)
}
