package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/repository"
	"github.com/eslsoft/chindospeak/pkg/fuzzy"
)

// recognitionAttempts bounds how often a failed recognition is retried
// before the card is auto-skipped.
const recognitionAttempts = 3

// SessionConfig carries everything a session needs up front. The engine
// reads no ambient state, which keeps it testable without a UI.
type SessionConfig struct {
	Skill      entity.Skill
	Direction  entity.Direction
	Language   entity.Language
	CategoryID string
	Threshold  float64
	// Practice runs the full queue mechanics without persisting any
	// spaced-repetition state.
	Practice bool
}

// SessionUsecase starts practice sessions over the due cards of one skill.
type SessionUsecase interface {
	Start(ctx context.Context, cfg SessionConfig) (*Session, error)
}

// NewSessionUsecase wires the engine with its store collaborators.
func NewSessionUsecase(cards repository.CardRepository, reviews repository.ReviewLogRepository, scheduler *ReviewScheduler, logger *logrus.Logger) SessionUsecase {
	return &sessionUsecase{
		cards:     cards,
		reviews:   reviews,
		scheduler: scheduler,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		clock:     time.Now,
	}
}

type sessionUsecase struct {
	cards     repository.CardRepository
	reviews   repository.ReviewLogRepository
	scheduler *ReviewScheduler
	logger    *logrus.Logger
	rng       *rand.Rand
	clock     func() time.Time
}

// Start fetches the cards due for the skill, applies the optional category
// filter, shuffles them and returns a live session. No due cards is not an
// error: the session comes back already finished with zero totals.
func (u *sessionUsecase) Start(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if cfg.Threshold <= 0 {
		cfg.Threshold = fuzzy.DefaultThreshold
	}
	cfg.Language = entity.NormalizeLanguage(cfg.Language)
	if cfg.Direction == "" {
		cfg.Direction = entity.DirectionMixed
	}

	due, err := u.cards.ListDue(ctx, cfg.Skill, u.scheduler.Today())
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	if cfg.CategoryID != "" {
		due = lo.Filter(due, func(c entity.Flashcard, _ int) bool {
			return c.CategoryID == cfg.CategoryID
		})
	}
	u.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})

	s := &Session{
		u:       u,
		cfg:     cfg,
		queue:   cardQueue{items: due},
		state:   entity.SessionIdle,
		askWord: true,
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
	return s, nil
}

// Session is one live practice run. The app drives it from a single UI
// loop, but a mutex still serializes submissions so a second answer can
// never race a pending grade-and-persist cycle for the same card.
type Session struct {
	u   *sessionUsecase
	cfg SessionConfig

	mu           sync.Mutex
	queue        cardQueue
	state        entity.SessionState
	totals       entity.SessionTotals
	dir          entity.Direction
	askWord      bool
	grading      bool
	stopped      bool
	cancelSpeech context.CancelFunc
	done         chan struct{}
}

// State returns the current lifecycle phase.
func (s *Session) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Finished reports whether the queue is exhausted or the session stopped.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == entity.SessionFinished
}

// Totals returns the session counters so far.
func (s *Session) Totals() entity.SessionTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// Remaining returns how many cards are still queued.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Done is closed when the queue empties or the session is stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

// Current returns a copy of the card being prompted, or nil once finished.
func (s *Session) Current() *entity.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	head := s.queue.Head()
	if head == nil {
		return nil
	}
	card := *head
	return &card
}

// Prompt returns the text to present for the current card together with
// the direction in effect for it.
func (s *Session) Prompt() (string, entity.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	head := s.queue.Head()
	if head == nil {
		return "", s.dir
	}
	if s.dir == entity.DirectionTranslationToWord {
		return head.Translation, s.dir
	}
	return head.Word, s.dir
}

// Expected returns the answer the current card is waiting for.
func (s *Session) Expected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expectedLocked()
}

func (s *Session) expectedLocked() string {
	head := s.queue.Head()
	if head == nil {
		return ""
	}
	if s.dir == entity.DirectionTranslationToWord {
		return head.Word
	}
	return head.Translation
}

// SubmitJudgment accepts a direct UI verdict (flip-card "Again / Got it").
func (s *Session) SubmitJudgment(ctx context.Context, correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptLocked(); err != nil {
		return err
	}
	s.gradeLocked(ctx, correct)
	return nil
}

// SubmitTranscript grades a spoken or typed transcript against the current
// card and applies the outcome.
func (s *Session) SubmitTranscript(ctx context.Context, transcript string) (fuzzy.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptLocked(); err != nil {
		return fuzzy.MatchResult{}, err
	}
	result := fuzzy.Grade(transcript, s.expectedLocked(), s.cfg.Language.Code(), s.cfg.Threshold)
	s.gradeLocked(ctx, result.Correct)
	return result, nil
}

// Skip drops the current card from the queue without touching its
// persisted review state.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptLocked(); err != nil {
		return err
	}
	s.totals.Skipped++
	s.queue.Dequeue()
	s.advanceLocked()
	return nil
}

// Stop aborts the session: pending speech operations are cancelled, the
// in-memory queue is discarded, and grades persisted so far stand.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.state == entity.SessionFinished {
		return
	}
	s.stopped = true
	if s.cancelSpeech != nil {
		s.cancelSpeech()
	}
	s.queue.Clear()
	s.state = entity.SessionFinished
	close(s.done)
}

func (s *Session) acceptLocked() error {
	if s.stopped {
		return entity.ErrSessionStopped
	}
	if s.state == entity.SessionFinished {
		return entity.ErrSessionFinished
	}
	if s.grading {
		return entity.ErrAnswerInFlight
	}
	return nil
}

// gradeLocked runs one grade-and-persist cycle. The scheduler write
// completes before the queue advances, so an interrupted session never
// leaves a card's skill state inconsistent with whether it was graded.
func (s *Session) gradeLocked(ctx context.Context, correct bool) {
	s.grading = true
	s.state = entity.SessionGrading
	card := s.queue.Head()

	if !s.cfg.Practice {
		next := s.u.scheduler.ApplyOutcome(card.Progress(s.cfg.Skill), correct)
		if err := s.u.cards.UpdateSkill(ctx, card.ID, s.cfg.Skill, next.Level, next.NextReview); err != nil {
			// Non-fatal: the in-memory queue stays authoritative for the
			// rest of the session.
			s.u.logger.WithError(err).WithField("card_id", card.ID).Warn("persisting review outcome failed")
		} else {
			card.SetProgress(s.cfg.Skill, next)
		}
		record := &entity.ReviewRecord{
			CardID:     card.ID,
			Skill:      s.cfg.Skill,
			Correct:    correct,
			ReviewedAt: s.u.clock(),
		}
		if err := s.u.reviews.Append(ctx, record); err != nil {
			s.u.logger.WithError(err).WithField("card_id", card.ID).Warn("appending review record failed")
		}
	}

	if correct {
		s.totals.Correct++
		s.queue.Dequeue()
	} else {
		s.totals.Incorrect++
		s.queue.Requeue()
	}

	s.grading = false
	s.state = entity.SessionFeedback
	s.advanceLocked()
}

// advanceLocked moves to the next head card, fixing the direction for it.
// In mixed mode the toggle flips before each card, so directions alternate
// strictly rather than randomly.
func (s *Session) advanceLocked() {
	if s.queue.Len() == 0 {
		s.state = entity.SessionFinished
		close(s.done)
		return
	}
	if s.cfg.Direction == entity.DirectionMixed {
		s.askWord = !s.askWord
		if s.askWord {
			s.dir = entity.DirectionTranslationToWord
		} else {
			s.dir = entity.DirectionWordToTranslation
		}
	} else {
		s.dir = s.cfg.Direction
	}
	s.state = entity.SessionPrompting
}

// Run drives the session hands-free: every prompt is spoken, one utterance
// is captured and graded, and spoken feedback follows. TTS failures only
// lose the audio; recognition failures are retried up to
// recognitionAttempts with a spoken re-prompt, then the card is skipped
// without mutating its review state.
func (s *Session) Run(ctx context.Context, speaker Speaker, recognizer Recognizer) (entity.SessionTotals, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancelSpeech = cancel
	s.mu.Unlock()

	attempts := 0
	for {
		select {
		case <-s.done:
			return s.Totals(), nil
		default:
		}
		if ctx.Err() != nil {
			return s.Totals(), s.runErr(ctx)
		}

		prompt, dir := s.Prompt()
		if err := speaker.Speak(ctx, prompt, s.promptLang(dir)); err != nil {
			if ctx.Err() != nil {
				return s.Totals(), s.runErr(ctx)
			}
			s.u.logger.WithError(err).Warn("speech synthesis failed, continuing without audio")
		}
		s.markAwaiting()

		transcript, err := recognizer.Recognize(ctx, s.answerLang(dir))
		if err != nil {
			if ctx.Err() != nil {
				return s.Totals(), s.runErr(ctx)
			}
			attempts++
			if attempts < recognitionAttempts {
				s.speakFeedback(ctx, speaker, "Please try again")
				continue
			}
			attempts = 0
			s.speakFeedback(ctx, speaker, "Let's skip this one")
			if err := s.Skip(); err != nil {
				if errors.Is(err, entity.ErrSessionFinished) || errors.Is(err, entity.ErrSessionStopped) {
					return s.Totals(), nil
				}
				return s.Totals(), err
			}
			continue
		}
		attempts = 0

		expected := s.Expected()
		result, err := s.SubmitTranscript(ctx, transcript)
		if err != nil {
			if errors.Is(err, entity.ErrSessionFinished) || errors.Is(err, entity.ErrSessionStopped) {
				return s.Totals(), nil
			}
			return s.Totals(), err
		}
		if result.Correct {
			s.speakFeedback(ctx, speaker, fmt.Sprintf("Correct! %s", expected))
		} else {
			s.speakFeedback(ctx, speaker, fmt.Sprintf("The answer is %s", expected))
		}
	}
}

// runErr hides the context cancellation caused by a user-initiated Stop;
// any other cancellation surfaces to the caller.
func (s *Session) runErr(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	return ctx.Err()
}

func (s *Session) markAwaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == entity.SessionPrompting {
		s.state = entity.SessionAwaitingAnswer
	}
}

func (s *Session) speakFeedback(ctx context.Context, speaker Speaker, text string) {
	if err := speaker.Speak(ctx, text, entity.EnglishSpeechTag); err != nil && ctx.Err() == nil {
		s.u.logger.WithError(err).Warn("speech synthesis failed, continuing without audio")
	}
}

func (s *Session) promptLang(dir entity.Direction) string {
	if dir == entity.DirectionTranslationToWord {
		return entity.EnglishSpeechTag
	}
	return s.cfg.Language.SpeechTag()
}

func (s *Session) answerLang(dir entity.Direction) string {
	if dir == entity.DirectionTranslationToWord {
		return s.cfg.Language.SpeechTag()
	}
	return entity.EnglishSpeechTag
}

// cardQueue is the session-local retry queue. A card appears at most once:
// Dequeue removes the head permanently, Requeue moves it to the tail for
// an immediate re-drill later in the same session.
type cardQueue struct {
	items []entity.Flashcard
}

func (q *cardQueue) Len() int { return len(q.items) }

func (q *cardQueue) Head() *entity.Flashcard {
	if len(q.items) == 0 {
		return nil
	}
	return &q.items[0]
}

func (q *cardQueue) Dequeue() {
	if len(q.items) > 0 {
		q.items = q.items[1:]
	}
}

func (q *cardQueue) Requeue() {
	if len(q.items) > 1 {
		head := q.items[0]
		q.items = append(q.items[1:], head)
	}
}

func (q *cardQueue) Clear() { q.items = nil }
