package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/spellwise/vocab-api/internal/api/middleware"
	"github.com/spellwise/vocab-api/internal/config"
	"github.com/spellwise/vocab-api/internal/domain/srs"
	"github.com/spellwise/vocab-api/internal/platform/postgres"
	"github.com/spellwise/vocab-api/internal/service/deck"
	"github.com/spellwise/vocab-api/internal/service/leaderboard"
	"github.com/spellwise/vocab-api/internal/service/review"
	"github.com/spellwise/vocab-api/internal/service/reward"
)

// limiterIdleTTL is how long an idle learner keeps its rate limit bucket.
const limiterIdleTTL = 10 * time.Minute

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckService   deck.Service
	reviewService review.Service
	rewardService reward.Service
	boardService  leaderboard.Service

	reviewLimiter *middleware.RateLimiter
}

// newApplication wires stores and services on top of db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	loc, err := srs.ParseTimezone(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Scheduler.Timezone, err)
	}
	clock := srs.NewSystemClock(loc)

	stores := review.Stores{
		Learners: postgres.NewPostgresLearnerStore(db, logger),
		Words:    postgres.NewPostgresWordStore(db, logger),
		States:   postgres.NewPostgresReviewStateStore(db, logger),
		History:  postgres.NewPostgresStudyHistoryStore(db, logger),
		Rewards:  postgres.NewPostgresRewardStore(db, logger),
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		deckService: deck.NewService(
			stores.Learners,
			stores.Words,
			stores.States,
			clock,
			deck.Config{DefaultLimit: cfg.Deck.DefaultLimit, MaxLimit: cfg.Deck.MaxLimit},
			logger,
		),
		reviewService: review.NewReviewService(db, stores, newScheduler(cfg.Scheduler), clock, logger),
		rewardService: reward.NewService(db, stores.Learners, stores.Rewards, stores.History, clock, logger),
		boardService:  leaderboard.NewService(stores.Learners, logger),
		reviewLimiter: newReviewLimiter(cfg.RateLimit),
	}

	logger.Info("Application initialized successfully", slog.String("timezone", loc.String()))
	return app, nil
}

// newScheduler builds the SM-2 scheduler, applying any overrides from cfg.
func newScheduler(cfg config.SchedulerConfig) srs.Service {
	return srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:     cfg.MinEaseFactor,
		DefaultEaseFactor: cfg.DefaultEaseFactor,
		FailureInterval:   cfg.FailureInterval,
		FirstInterval:     cfg.FirstInterval,
		SecondInterval:    cfg.SecondInterval,
	}))
}

func newReviewLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.ReviewsPerSecond, cfg.Burst, limiterIdleTTL, learnerKey)
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.Any("error", err))
		}
	}
	app.logger.Info("Application shutdown completed")
}
