package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/eslsoft/chindospeak/internal/entity"
)

func newTestStats(reviews *fakeReviewLog, now time.Time) *statsUsecase {
	return &statsUsecase{reviews: reviews, clock: fixedClock(now)}
}

func record(daysAgo int, correct bool) entity.ReviewRecord {
	return entity.ReviewRecord{
		CardID:     "a",
		Skill:      entity.SkillReading,
		Correct:    correct,
		ReviewedAt: schedulerNow.AddDate(0, 0, -daysAgo),
	}
}

func TestActivityBucketsByDay(t *testing.T) {
	reviews := &fakeReviewLog{records: []entity.ReviewRecord{
		record(0, true),
		record(0, false),
		record(2, true),
	}}
	stats := newTestStats(reviews, schedulerNow)

	activity, err := stats.Activity(context.Background(), 3)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(activity) != 3 {
		t.Fatalf("got %d days, want 3", len(activity))
	}

	if activity[0].Date != "2026-03-08" || activity[0].Total != 1 || activity[0].Correct != 1 {
		t.Fatalf("day 0 = %+v", activity[0])
	}
	if activity[1].Date != "2026-03-09" || activity[1].Total != 0 {
		t.Fatalf("day 1 = %+v", activity[1])
	}
	if activity[2].Date != "2026-03-10" || activity[2].Total != 2 || activity[2].Correct != 1 {
		t.Fatalf("day 2 = %+v", activity[2])
	}
}

func TestStreak(t *testing.T) {
	cases := []struct {
		name     string
		daysAgo  []int
		expected int
	}{
		{"no reviews", nil, 0},
		{"today only", []int{0}, 1},
		{"today and yesterday", []int{0, 1}, 2},
		{"yesterday and before, none today", []int{1, 2, 3}, 3},
		{"broken by a gap", []int{0, 2, 3}, 1},
		{"nothing recent", []int{2, 3}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := &fakeReviewLog{}
			for _, d := range tc.daysAgo {
				reviews.records = append(reviews.records, record(d, true))
			}
			stats := newTestStats(reviews, schedulerNow)
			streak, err := stats.Streak(context.Background())
			if err != nil {
				t.Fatalf("streak: %v", err)
			}
			if streak != tc.expected {
				t.Fatalf("streak = %d, want %d", streak, tc.expected)
			}
		})
	}
}
