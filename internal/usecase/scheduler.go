package usecase

import (
	"time"

	"github.com/eslsoft/chindospeak/internal/entity"
)

// FailurePolicy decides what happens to a track's level on a wrong answer.
type FailurePolicy string

const (
	// FailureReset drops the level back to 0, forcing a full re-drill.
	FailureReset FailurePolicy = "reset"
	// FailureStepBack decrements the level by one instead.
	FailureStepBack FailurePolicy = "step_back"
)

// DefaultIntervals maps a mastery level to the days until that level's next
// review.
var DefaultIntervals = []int{0, 1, 3, 5, 10, 24}

// ReviewScheduler maps a review outcome to a new mastery level and next
// review date. It is a pure function of (state, outcome) apart from the
// injected clock, and is applied per skill track: reading, listening and
// speaking use separate state but identical logic.
type ReviewScheduler struct {
	intervals []int
	policy    FailurePolicy
	clock     func() time.Time
}

// NewReviewScheduler builds a scheduler. Intervals must cover levels
// 0..MaxLevel; anything else falls back to DefaultIntervals. An unknown
// policy falls back to FailureReset.
func NewReviewScheduler(intervals []int, policy FailurePolicy) *ReviewScheduler {
	if len(intervals) != entity.MaxLevel+1 {
		intervals = DefaultIntervals
	}
	if policy != FailureStepBack {
		policy = FailureReset
	}
	return &ReviewScheduler{
		intervals: append([]int(nil), intervals...),
		policy:    policy,
		clock:     time.Now,
	}
}

// IntervalDays returns the review interval for a mastery level.
func (s *ReviewScheduler) IntervalDays(level int) int {
	if level < 0 || level >= len(s.intervals) {
		return 0
	}
	return s.intervals[level]
}

// Today returns the wall-clock local calendar date in ISO form.
func (s *ReviewScheduler) Today() string {
	return s.clock().Format("2006-01-02")
}

// ApplyOutcome computes the new track state after a graded answer. The next
// review date always uses the interval of the new level, so a card moving
// from level 3 to 4 is scheduled 10 days out, not 5.
func (s *ReviewScheduler) ApplyOutcome(current entity.SkillProgress, correct bool) entity.SkillProgress {
	level := current.Level
	switch {
	case correct:
		level++
		if level > entity.MaxLevel {
			level = entity.MaxLevel
		}
	case s.policy == FailureStepBack:
		level--
		if level < 0 {
			level = 0
		}
	default:
		level = 0
	}

	next := s.clock().AddDate(0, 0, s.IntervalDays(level)).Format("2006-01-02")
	return entity.SkillProgress{Level: level, NextReview: next}
}
