package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/domain/srs"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// Stores groups the stores a review touches.
type Stores struct {
	Learners store.LearnerStore
	Words    store.WordStore
	States   store.ReviewStateStore
	History  store.StudyHistoryStore
	Rewards  store.RewardStore
}

func (s Stores) withTx(tx *sql.Tx) Stores {
	return Stores{
		Learners: s.Learners.WithTx(tx),
		Words:    s.Words.WithTx(tx),
		States:   s.States.WithTx(tx),
		History:  s.History.WithTx(tx),
		Rewards:  s.Rewards.WithTx(tx),
	}
}

// Verify interface compliance at compile time
var _ Service = (*reviewServiceImpl)(nil)

type reviewServiceImpl struct {
	db        store.TxBeginner
	stores    Stores
	scheduler srs.Service
	clock     srs.Clock
	logger    *slog.Logger
}

// NewReviewService creates a new review Service.
func NewReviewService(
	db store.TxBeginner,
	stores Stores,
	scheduler srs.Service,
	clock srs.Clock,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if stores.Learners == nil || stores.Words == nil || stores.States == nil ||
		stores.History == nil || stores.Rewards == nil {
		panic("all stores must be set")
	}
	if scheduler == nil {
		scheduler = srs.NewDefaultService()
	}
	if clock == nil {
		clock = srs.NewSystemClock(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:        db,
		stores:    stores,
		scheduler: scheduler,
		clock:     clock,
		logger:    logger.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements Service.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, sub Submission) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("learner", sub.LearnerName),
		slog.Int64("word_id", sub.WordID))

	if clamped := domain.ClampQuality(sub.Quality); int(clamped) != sub.Quality {
		log.Warn("review quality out of range, clamping",
			slog.Int("quality", sub.Quality),
			slog.Int("clamped_quality", int(clamped)))
	}

	now, today := srs.NowAndToday(s.clock)

	var result *Result
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.stores.withTx(tx)

		// Locking the learner row serializes every submission of the learner,
		// so the read-modify-write below cannot lose an update.
		learner, err := stores.Learners.GetByNameForUpdate(ctx, sub.LearnerName)
		if err != nil {
			if errors.Is(err, store.ErrLearnerNotFound) {
				log.Debug("learner not found for review")
				return ErrLearnerNotFound
			}
			return fmt.Errorf("failed to get learner: %w", err)
		}

		if _, err := stores.Words.GetByID(ctx, sub.WordID); err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				log.Debug("word not found for review")
				return ErrWordNotFound
			}
			return fmt.Errorf("failed to get word: %w", err)
		}

		current, err := stores.States.GetForUpdate(ctx, learner.ID, sub.WordID)
		if err != nil {
			if !errors.Is(err, store.ErrReviewStateNotFound) {
				return fmt.Errorf("failed to get review state: %w", err)
			}
			current = s.scheduler.NewState(learner.ID, sub.WordID)
		}

		outcome, err := PlanOutcome(s.scheduler, learner, current, sub.Quality, now, today)
		if err != nil {
			return err
		}

		total, err := applyOutcome(ctx, stores, outcome, learner.TotalPoints)
		if err != nil {
			return err
		}

		result = &Result{
			UpdatedState:  outcome.State,
			PointsAwarded: PointsPerReview,
			TotalPoints:   total,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrLearnerNotFound) || errors.Is(err, ErrWordNotFound) {
			return nil, err
		}

		log.Error("failed to submit review", redact.Attr(err))
		return nil, NewSubmitReviewError("failed to record review", err)
	}

	log.Info("review recorded",
		slog.Int("quality", int(domain.ClampQuality(sub.Quality))),
		slog.Int("repetitions", result.UpdatedState.Repetitions),
		slog.Int("interval_days", result.UpdatedState.IntervalDays),
		slog.Float64("ease_factor", result.UpdatedState.EaseFactor),
		slog.String("due_date", result.UpdatedState.DueDate.Format("2006-01-02")),
		slog.Int("total_points", result.TotalPoints))

	return result, nil
}

// applyOutcome performs the effects in order and returns the learner's
// balance after them.
func applyOutcome(ctx context.Context, stores Stores, outcome *Outcome, balance int) (int, error) {
	for _, effect := range outcome.Effects {
		switch e := effect.(type) {
		case SaveState:
			if err := stores.States.Upsert(ctx, e.State); err != nil {
				return 0, fmt.Errorf("failed to save review state: %w", err)
			}
		case RecordStudy:
			if _, err := stores.History.Increment(ctx, e.LearnerID, e.WordID, e.At); err != nil {
				return 0, fmt.Errorf("failed to record study history: %w", err)
			}
		case GrantPoints:
			total, err := stores.Learners.AddPoints(ctx, e.LearnerID, e.Points)
			if err != nil {
				return 0, fmt.Errorf("failed to grant points: %w", err)
			}
			balance = total
		case AppendLedger:
			if err := stores.Rewards.Append(ctx, e.Entry); err != nil {
				return 0, fmt.Errorf("failed to append ledger entry: %w", err)
			}
		default:
			return 0, fmt.Errorf("unknown review effect %T", effect)
		}
	}
	return balance, nil
}
