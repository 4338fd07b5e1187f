package entity

import (
	"strings"
	"time"
)

// Skill is one of the independent practice tracks of a flashcard.
type Skill string

const (
	SkillReading   Skill = "reading"
	SkillListening Skill = "listening"
	SkillSpeaking  Skill = "speaking"
)

// Skills lists all tracks in a stable order.
var Skills = []Skill{SkillReading, SkillListening, SkillSpeaking}

// ParseSkill converts an arbitrary string into a supported Skill value.
func ParseSkill(s string) (Skill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reading", "read":
		return SkillReading, nil
	case "listening", "listen":
		return SkillListening, nil
	case "speaking", "speak":
		return SkillSpeaking, nil
	default:
		return "", ErrUnknownSkill
	}
}

// MaxLevel is the mastery ceiling shared by all skill tracks.
const MaxLevel = 5

// SkillProgress carries spaced repetition state for one skill track.
// NextReview is a local calendar date in ISO form (YYYY-MM-DD); the fixed
// format keeps the due check a plain string comparison.
type SkillProgress struct {
	Level      int    `json:"level"`
	NextReview string `json:"next_review"`
}

// Due reports whether the track needs review on the given ISO date.
func (p SkillProgress) Due(today string) bool {
	return p.NextReview <= today
}

// Flashcard is a single vocabulary entry. The three skill tracks evolve
// independently: a card can be mastered for listening while still at
// level 0 for speaking.
type Flashcard struct {
	ID            string        `json:"id"`
	Word          string        `json:"word"`
	Translation   string        `json:"translation"`
	Pronunciation string        `json:"pronunciation,omitempty"`
	CategoryID    string        `json:"category_id,omitempty"`
	Reading       SkillProgress `json:"reading"`
	Listening     SkillProgress `json:"listening"`
	Speaking      SkillProgress `json:"speaking"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Progress returns the track state for the given skill.
func (c *Flashcard) Progress(skill Skill) SkillProgress {
	switch skill {
	case SkillListening:
		return c.Listening
	case SkillSpeaking:
		return c.Speaking
	default:
		return c.Reading
	}
}

// SetProgress replaces the track state for the given skill.
func (c *Flashcard) SetProgress(skill Skill, p SkillProgress) {
	switch skill {
	case SkillListening:
		c.Listening = p
	case SkillSpeaking:
		c.Speaking = p
	default:
		c.Reading = p
	}
}

// Normalize ensures defaults & constraints before persistence. New cards
// start with every track at level 0 and due today.
func (c *Flashcard) Normalize(now time.Time) {
	c.Word = strings.TrimSpace(c.Word)
	c.Translation = strings.TrimSpace(c.Translation)
	c.Pronunciation = strings.TrimSpace(c.Pronunciation)
	today := now.Format("2006-01-02")
	for _, skill := range Skills {
		p := c.Progress(skill)
		if p.NextReview == "" {
			p.NextReview = today
		}
		if p.Level < 0 {
			p.Level = 0
		}
		if p.Level > MaxLevel {
			p.Level = MaxLevel
		}
		c.SetProgress(skill, p)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// Category groups cards for filtered practice sessions.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewRecord is one graded answer appended to the review log.
type ReviewRecord struct {
	ID         string    `json:"id"`
	CardID     string    `json:"card_id"`
	Skill      Skill     `json:"skill"`
	Correct    bool      `json:"correct"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
