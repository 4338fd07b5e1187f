package usecase

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func cloneCard(c *entity.Flashcard) *entity.Flashcard {
	copy := *c
	return &copy
}

type fakeCardRepo struct {
	mu          sync.RWMutex
	items       map[string]*entity.Flashcard
	order       []string
	failUpdate  bool
	updateCalls int
}

func newFakeCardRepo(cards ...entity.Flashcard) *fakeCardRepo {
	r := &fakeCardRepo{items: make(map[string]*entity.Flashcard)}
	for i := range cards {
		card := cards[i]
		r.items[card.ID] = cloneCard(&card)
		r.order = append(r.order, card.ID)
	}
	return r
}

func (r *fakeCardRepo) Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[card.ID]; ok {
		return nil, entity.ErrDuplicateCard
	}
	copy := cloneCard(card)
	r.items[copy.ID] = copy
	r.order = append(r.order, copy.ID)
	return cloneCard(copy), nil
}

func (r *fakeCardRepo) GetByID(ctx context.Context, id string) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, entity.ErrCardNotFound
	}
	return cloneCard(item), nil
}

func (r *fakeCardRepo) List(ctx context.Context, query *repository.ListCardQuery) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Flashcard
	for _, id := range r.order {
		item := r.items[id]
		if query != nil && query.CategoryID != "" && item.CategoryID != query.CategoryID {
			continue
		}
		out = append(out, *cloneCard(item))
	}
	return out, nil
}

func (r *fakeCardRepo) ListDue(ctx context.Context, skill entity.Skill, today string) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Flashcard
	for _, id := range r.order {
		item := r.items[id]
		if item.Progress(skill).Due(today) {
			out = append(out, *cloneCard(item))
		}
	}
	return out, nil
}

func (r *fakeCardRepo) UpdateSkill(ctx context.Context, id string, skill entity.Skill, level int, nextReview string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.failUpdate {
		return errors.New("store unavailable")
	}
	item, ok := r.items[id]
	if !ok {
		return entity.ErrCardNotFound
	}
	item.SetProgress(skill, entity.SkillProgress{Level: level, NextReview: nextReview})
	return nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrCardNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCardRepo) snapshot(id string) entity.Flashcard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return *r.items[id]
}

type fakeReviewLog struct {
	mu      sync.RWMutex
	failing bool
	records []entity.ReviewRecord
}

func (r *fakeReviewLog) Append(ctx context.Context, record *entity.ReviewRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("store unavailable")
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeReviewLog) ListSince(ctx context.Context, from time.Time) ([]entity.ReviewRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.ReviewRecord
	for _, record := range r.records {
		if !record.ReviewedAt.Before(from) {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, category.Name) {
			return nil, entity.ErrDuplicateCategory
		}
	}
	copy := *category
	r.items[copy.ID] = &copy
	return &copy, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Category
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			copy := *item
			return &copy, nil
		}
	}
	return nil, nil
}

type scriptSpeaker struct {
	mu     sync.Mutex
	fail   bool
	spoken []string
}

func (s *scriptSpeaker) Speak(ctx context.Context, text, lang string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	if s.fail {
		return errors.New("tts unavailable")
	}
	return nil
}

type recognition struct {
	text string
	err  error
}

type scriptRecognizer struct {
	mu     sync.Mutex
	script []recognition
	calls  int
}

func (r *scriptRecognizer) Recognize(ctx context.Context, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls > len(r.script) {
		return "", entity.ErrSpeechUnavailable
	}
	step := r.script[r.calls-1]
	return step.text, step.err
}

func newTestScheduler(now time.Time) *ReviewScheduler {
	scheduler := NewReviewScheduler(nil, FailureReset)
	scheduler.clock = fixedClock(now)
	return scheduler
}

func newTestEngine(cards *fakeCardRepo, reviews *fakeReviewLog, now time.Time) *sessionUsecase {
	return &sessionUsecase{
		cards:     cards,
		reviews:   reviews,
		scheduler: newTestScheduler(now),
		logger:    testLogger(),
		rng:       rand.New(rand.NewSource(42)),
		clock:     fixedClock(now),
	}
}
