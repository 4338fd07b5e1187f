package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/chindospeak/internal/entity"
)

func newTestDeck(cards *fakeCardRepo, categories *fakeCategoryRepo) *deckUsecase {
	return &deckUsecase{
		cards:      cards,
		categories: categories,
		scheduler:  newTestScheduler(schedulerNow),
		clock:      fixedClock(schedulerNow),
	}
}

func TestAddCardValidation(t *testing.T) {
	deck := newTestDeck(newFakeCardRepo(), newFakeCategoryRepo())

	if _, err := deck.AddCard(context.Background(), "", "hello", "", ""); !errors.Is(err, entity.ErrInvalidCardText) {
		t.Fatalf("empty word: err = %v, want ErrInvalidCardText", err)
	}
	if _, err := deck.AddCard(context.Background(), "你好", "   ", "", ""); !errors.Is(err, entity.ErrInvalidCardText) {
		t.Fatalf("empty translation: err = %v, want ErrInvalidCardText", err)
	}
}

func TestAddCardDefaultsAndCategory(t *testing.T) {
	categories := newFakeCategoryRepo()
	deck := newTestDeck(newFakeCardRepo(), categories)

	first, err := deck.AddCard(context.Background(), "你好", "hello", "nǐ hǎo", "greetings")
	if err != nil {
		t.Fatalf("add card: %v", err)
	}
	if first.ID == "" {
		t.Fatal("card id must be assigned")
	}
	for _, skill := range entity.Skills {
		p := first.Progress(skill)
		if p.Level != 0 || p.NextReview != sessionToday {
			t.Fatalf("%s progress = %+v, want level 0 due today", skill, p)
		}
	}

	second, err := deck.AddCard(context.Background(), "再见", "goodbye", "", "Greetings")
	if err != nil {
		t.Fatalf("add card: %v", err)
	}
	if second.CategoryID != first.CategoryID {
		t.Fatalf("category not reused: %q vs %q", second.CategoryID, first.CategoryID)
	}
	all, err := categories.List(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d categories, want 1", len(all))
	}
}

func TestDueCounts(t *testing.T) {
	future := dueCard("a", "satu", "one")
	future.Reading.NextReview = "2026-04-01"
	repo := newFakeCardRepo(future, dueCard("b", "dua", "two"))
	deck := newTestDeck(repo, newFakeCategoryRepo())

	counts, err := deck.DueCounts(context.Background())
	if err != nil {
		t.Fatalf("due counts: %v", err)
	}
	if counts[entity.SkillReading] != 1 {
		t.Fatalf("reading due = %d, want 1", counts[entity.SkillReading])
	}
	if counts[entity.SkillListening] != 2 || counts[entity.SkillSpeaking] != 2 {
		t.Fatalf("counts = %+v, want 2 listening and 2 speaking", counts)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newTestDeck(newFakeCardRepo(), newFakeCategoryRepo())
	for _, w := range []struct{ word, translation, category string }{
		{"你好", "hello", "greetings"},
		{"谢谢", "thank you", "greetings"},
		{"米饭", "rice", "food"},
	} {
		if _, err := source.AddCard(context.Background(), w.word, w.translation, "", w.category); err != nil {
			t.Fatalf("add card: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := source.Export(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	target := newTestDeck(newFakeCardRepo(), newFakeCategoryRepo())
	created, err := target.ImportJSON(context.Background(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if created != 3 {
		t.Fatalf("created = %d, want 3", created)
	}

	cards, err := target.ListCards(context.Background(), "")
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("got %d cards after import, want 3", len(cards))
	}

	// Importing the same export again creates nothing new.
	created, err = target.ImportJSON(context.Background(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if created != 0 {
		t.Fatalf("second import created %d cards, want 0", created)
	}
}
