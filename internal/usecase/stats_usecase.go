package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/repository"
)

// DayActivity is one day's review counts, keyed by ISO date.
type DayActivity struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

// StatsUsecase reports practice activity derived from the review log.
type StatsUsecase interface {
	// Activity returns one entry per calendar day for the last `days`
	// days, oldest first, including zero days.
	Activity(ctx context.Context, days int) ([]DayActivity, error)
	// Streak counts consecutive days with at least one review, ending
	// today or, if today has none yet, yesterday.
	Streak(ctx context.Context) (int, error)
}

// NewStatsUsecase wires the review log with default behaviour.
func NewStatsUsecase(reviews repository.ReviewLogRepository) StatsUsecase {
	return &statsUsecase{reviews: reviews, clock: time.Now}
}

type statsUsecase struct {
	reviews repository.ReviewLogRepository
	clock   func() time.Time
}

func (u *statsUsecase) Activity(ctx context.Context, days int) ([]DayActivity, error) {
	if days <= 0 {
		days = 30
	}
	now := u.clock()
	from := now.AddDate(0, 0, -(days - 1))
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	records, err := u.reviews.ListSince(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("list review records: %w", err)
	}

	byDay := lo.GroupBy(records, func(r entity.ReviewRecord) string {
		return r.ReviewedAt.Format("2006-01-02")
	})

	activity := make([]DayActivity, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		day := DayActivity{Date: date}
		for _, r := range byDay[date] {
			day.Total++
			if r.Correct {
				day.Correct++
			}
		}
		activity = append(activity, day)
	}
	return activity, nil
}

func (u *statsUsecase) Streak(ctx context.Context) (int, error) {
	now := u.clock()
	// A year of history bounds the scan; nobody holds a longer streak
	// without showing up in that window anyway.
	records, err := u.reviews.ListSince(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		return 0, fmt.Errorf("list review records: %w", err)
	}

	reviewed := lo.SliceToMap(records, func(r entity.ReviewRecord) (string, struct{}) {
		return r.ReviewedAt.Format("2006-01-02"), struct{}{}
	})

	day := now
	if _, ok := reviewed[day.Format("2006-01-02")]; !ok {
		// No review yet today: a streak ending yesterday still counts.
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := reviewed[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
