package reward

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/domain/srs"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/service"
	"github.com/spellwise/vocab-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Listing sizes.
const (
	PreviewSize         = 5
	PageSize            = 20
	DefaultHistoryLimit = 100
)

// Summary is a learner's balance with the newest ledger entries.
type Summary struct {
	TotalPoints int
	Preview     []*domain.RewardEntry
}

// Page is one page of a learner's ledger, newest first.
type Page struct {
	Page  int
	Size  int
	Total int
	Items []*domain.RewardEntry
}

// Service manages learner points and exposes study history.
type Service interface {
	// Summary returns the balance and the PreviewSize newest ledger entries.
	Summary(ctx context.Context, learnerName string) (*Summary, error)

	// HistoryPage returns page (1-based, values below 1 mean 1) of the ledger.
	HistoryPage(ctx context.Context, learnerName string, page int) (*Page, error)

	// Earn grants points for reason and returns the new balance.
	Earn(ctx context.Context, learnerName string, points int, reason string) (int, error)

	// Redeem spends points on item and returns the new balance.
	// Returns domain.ErrInsufficientPoints if the balance is too low.
	Redeem(ctx context.Context, learnerName string, points int, item string) (int, error)

	// StudyHistory returns up to limit study counters, most recent first.
	// limit <= 0 means DefaultHistoryLimit.
	StudyHistory(ctx context.Context, learnerName string, limit int) ([]*domain.StudyHistory, error)
}

type rewardService struct {
	db       store.TxBeginner
	learners store.LearnerStore
	rewards  store.RewardStore
	history  store.StudyHistoryStore
	clock    srs.Clock
	logger   *slog.Logger
}

// Verify interface compliance at compile time
var _ Service = (*rewardService)(nil)

// NewService creates a reward Service.
func NewService(
	db store.TxBeginner,
	learners store.LearnerStore,
	rewards store.RewardStore,
	history store.StudyHistoryStore,
	clock srs.Clock,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if learners == nil || rewards == nil || history == nil {
		panic("stores cannot be nil")
	}
	if clock == nil {
		clock = srs.NewSystemClock(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &rewardService{
		db:       db,
		learners: learners,
		rewards:  rewards,
		history:  history,
		clock:    clock,
		logger:   logger.With(slog.String("component", "reward_service")),
	}
}

func (s *rewardService) learner(ctx context.Context, op, name string) (*domain.Learner, error) {
	learner, err := s.learners.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrLearnerNotFound) {
			return nil, service.ErrLearnerNotFound
		}
		return nil, service.NewServiceError("reward", op, err)
	}
	return learner, nil
}

// Summary implements Service.Summary.
func (s *rewardService) Summary(ctx context.Context, learnerName string) (*Summary, error) {
	learner, err := s.learner(ctx, "summary", learnerName)
	if err != nil {
		return nil, err
	}

	preview, err := s.rewards.ListForLearner(ctx, learner.ID, PreviewSize, 0)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to load ledger preview", redact.Attr(err), slog.Int64("learner_id", learner.ID))
		return nil, service.NewServiceError("reward", "summary", err)
	}

	return &Summary{TotalPoints: learner.TotalPoints, Preview: nonNil(preview)}, nil
}

// HistoryPage implements Service.HistoryPage.
func (s *rewardService) HistoryPage(ctx context.Context, learnerName string, page int) (*Page, error) {
	learner, err := s.learner(ctx, "history_page", learnerName)
	if err != nil {
		return nil, err
	}

	page = max(page, 1)
	result := &Page{Page: page, Size: PageSize}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.rewards.CountForLearner(gctx, learner.ID)
		result.Total = n
		return err
	})
	g.Go(func() error {
		items, err := s.rewards.ListForLearner(gctx, learner.ID, PageSize, (page-1)*PageSize)
		result.Items = nonNil(items)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to load ledger page", redact.Attr(err), slog.Int64("learner_id", learner.ID))
		return nil, service.NewServiceError("reward", "history_page", err)
	}

	return result, nil
}

// Earn implements Service.Earn.
func (s *rewardService) Earn(ctx context.Context, learnerName string, points int, reason string) (int, error) {
	return s.changeBalance(ctx, "earn", learnerName, func(l *domain.Learner, now time.Time) (*domain.RewardEntry, error) {
		return domain.NewEarnEntry(l.ID, points, reason, now)
	})
}

// Redeem implements Service.Redeem.
func (s *rewardService) Redeem(ctx context.Context, learnerName string, points int, item string) (int, error) {
	return s.changeBalance(ctx, "redeem", learnerName, func(l *domain.Learner, now time.Time) (*domain.RewardEntry, error) {
		entry, err := domain.NewRedeemEntry(l.ID, points, item, now)
		if err != nil {
			return nil, err
		}
		if l.TotalPoints < points {
			return nil, domain.ErrInsufficientPoints
		}
		return entry, nil
	})
}

// changeBalance locks the learner, builds the ledger entry and applies it to
// the balance in one transaction.
func (s *rewardService) changeBalance(
	ctx context.Context,
	op string,
	learnerName string,
	newEntry func(*domain.Learner, time.Time) (*domain.RewardEntry, error),
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("operation", op),
		slog.String("learner", learnerName))

	now := s.clock.Now()

	var total int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		learners := s.learners.WithTx(tx)
		rewards := s.rewards.WithTx(tx)

		learner, err := learners.GetByNameForUpdate(ctx, learnerName)
		if err != nil {
			if errors.Is(err, store.ErrLearnerNotFound) {
				return service.ErrLearnerNotFound
			}
			return fmt.Errorf("failed to lock learner: %w", err)
		}

		entry, err := newEntry(learner, now)
		if err != nil {
			return err
		}

		total, err = learners.AddPoints(ctx, learner.ID, entry.Points)
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		if err := rewards.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLearnerNotFound),
			errors.Is(err, domain.ErrNonPositivePoints):
			return 0, err
		case errors.Is(err, domain.ErrInsufficientPoints):
			log.Info("redeem rejected, insufficient points")
			return 0, err
		}
		log.Error("failed to change balance", redact.Attr(err))
		return 0, service.NewServiceError("reward", op, err)
	}

	log.Info("balance changed", slog.Int("total_points", total))
	return total, nil
}

// StudyHistory implements Service.StudyHistory.
func (s *rewardService) StudyHistory(
	ctx context.Context,
	learnerName string,
	limit int,
) ([]*domain.StudyHistory, error) {
	learner, err := s.learner(ctx, "study_history", learnerName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.history.ListForLearner(ctx, learner.ID, limit)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to load study history", redact.Attr(err), slog.Int64("learner_id", learner.ID))
		return nil, service.NewServiceError("reward", "study_history", err)
	}
	return nonNil(rows), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
