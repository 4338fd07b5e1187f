package usecase

import (
	"testing"
	"time"

	"github.com/eslsoft/chindospeak/internal/entity"
)

var schedulerNow = time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)

func TestIntervalTable(t *testing.T) {
	scheduler := newTestScheduler(schedulerNow)
	want := []int{0, 1, 3, 5, 10, 24}
	for level, days := range want {
		if got := scheduler.IntervalDays(level); got != days {
			t.Fatalf("IntervalDays(%d) = %d, want %d", level, got, days)
		}
	}
	if got := scheduler.IntervalDays(-1); got != 0 {
		t.Fatalf("IntervalDays(-1) = %d, want 0", got)
	}
	if got := scheduler.IntervalDays(6); got != 0 {
		t.Fatalf("IntervalDays(6) = %d, want 0", got)
	}
}

func TestApplyOutcomeLevels(t *testing.T) {
	scheduler := newTestScheduler(schedulerNow)
	for level := 0; level <= entity.MaxLevel; level++ {
		next := scheduler.ApplyOutcome(entity.SkillProgress{Level: level}, true)
		wantLevel := level + 1
		if wantLevel > entity.MaxLevel {
			wantLevel = entity.MaxLevel
		}
		if next.Level != wantLevel {
			t.Fatalf("correct at level %d: got %d, want %d", level, next.Level, wantLevel)
		}

		next = scheduler.ApplyOutcome(entity.SkillProgress{Level: level}, false)
		if next.Level != 0 {
			t.Fatalf("incorrect at level %d: got %d, want 0", level, next.Level)
		}
	}
}

func TestApplyOutcomeUsesNewLevelInterval(t *testing.T) {
	scheduler := newTestScheduler(schedulerNow)

	// Level 3 → 4 schedules with level 4's interval of 10 days, not 5.
	next := scheduler.ApplyOutcome(entity.SkillProgress{Level: 3}, true)
	if next.Level != 4 || next.NextReview != "2026-03-20" {
		t.Fatalf("got %+v, want level 4 due 2026-03-20", next)
	}

	next = scheduler.ApplyOutcome(entity.SkillProgress{Level: 2}, true)
	if next.Level != 3 || next.NextReview != "2026-03-15" {
		t.Fatalf("got %+v, want level 3 due 2026-03-15", next)
	}

	// A failure reschedules for today.
	next = scheduler.ApplyOutcome(entity.SkillProgress{Level: 5}, false)
	if next.Level != 0 || next.NextReview != "2026-03-10" {
		t.Fatalf("got %+v, want level 0 due 2026-03-10", next)
	}
}

func TestStepBackPolicy(t *testing.T) {
	scheduler := NewReviewScheduler(nil, FailureStepBack)
	scheduler.clock = fixedClock(schedulerNow)

	next := scheduler.ApplyOutcome(entity.SkillProgress{Level: 4}, false)
	if next.Level != 3 || next.NextReview != "2026-03-15" {
		t.Fatalf("got %+v, want level 3 due 2026-03-15", next)
	}

	next = scheduler.ApplyOutcome(entity.SkillProgress{Level: 0}, false)
	if next.Level != 0 {
		t.Fatalf("level must not go below 0, got %d", next.Level)
	}
}

func TestDueComparison(t *testing.T) {
	today := "2026-03-10"
	cases := []struct {
		next string
		want bool
	}{
		{"2026-03-10", true},
		{"2026-03-09", true},
		{"2025-12-31", true},
		{"2026-03-11", false},
	}
	for _, tc := range cases {
		p := entity.SkillProgress{NextReview: tc.next}
		if got := p.Due(today); got != tc.want {
			t.Fatalf("Due(%q vs %q) = %v, want %v", tc.next, today, got, tc.want)
		}
	}
}
