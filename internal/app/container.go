package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/chindospeak/internal/adapter/repository"
	"github.com/eslsoft/chindospeak/internal/infrastructure/config"
	"github.com/eslsoft/chindospeak/internal/infrastructure/database"
	"github.com/eslsoft/chindospeak/internal/repository"
	"github.com/eslsoft/chindospeak/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *sqlx.DB

	Cards      repository.CardRepository
	Reviews    repository.ReviewLogRepository
	Categories repository.CategoryRepository

	Scheduler *usecase.ReviewScheduler
	Sessions  usecase.SessionUsecase
	Deck      usecase.DeckUsecase
	Stats     usecase.StatsUsecase

	cleanup func()
}

// Initialize loads configuration and wires the full dependency graph.
func Initialize() (*Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	cards := adapterrepo.NewCardRepository(db)
	reviews := adapterrepo.NewReviewLogRepository(db)
	categories := adapterrepo.NewCategoryRepository(db)

	scheduler := usecase.NewReviewScheduler(cfg.Review.Intervals, usecase.FailurePolicy(cfg.Review.FailurePolicy))

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cards:      cards,
		Reviews:    reviews,
		Categories: categories,
		Scheduler:  scheduler,
		Sessions:   usecase.NewSessionUsecase(cards, reviews, scheduler, logger),
		Deck:       usecase.NewDeckUsecase(cards, categories, scheduler),
		Stats:      usecase.NewStatsUsecase(reviews),
		cleanup:    cleanup,
	}
	return c, c.Close, nil
}

// Close releases the container's resources.
func (c *Container) Close() {
	if c.cleanup != nil {
		c.cleanup()
		c.cleanup = nil
	}
}

// NewLogger builds the application logger from config.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
