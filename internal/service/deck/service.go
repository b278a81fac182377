package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spellwise/vocab-api/internal/domain/srs"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// Default deck size bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 200
)

// Request describes the deck a client asked for.
type Request struct {
	LearnerName string
	// Limit <= 0 selects the configured default.
	Limit int
	// Tags optionally narrows the pool to these of the learner's tags.
	Tags []string
}

// Config bounds the number of cards in a deck.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Service builds daily decks. Deck building is read-only.
type Service interface {
	BuildDeck(ctx context.Context, req Request) (*Deck, error)
}

type deckService struct {
	learners store.LearnerStore
	words    store.WordStore
	states   store.ReviewStateStore
	clock    srs.Clock
	cfg      Config
	logger   *slog.Logger
}

// Verify interface compliance at compile time
var _ Service = (*deckService)(nil)

// NewService creates a deck Service. Zero limits in cfg fall back to
// DefaultLimit and MaxLimit.
func NewService(
	learners store.LearnerStore,
	words store.WordStore,
	states store.ReviewStateStore,
	clock srs.Clock,
	cfg Config,
	logger *slog.Logger,
) Service {
	if learners == nil {
		panic("learners cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	if states == nil {
		panic("states cannot be nil")
	}
	if clock == nil {
		clock = srs.NewSystemClock(nil)
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = MaxLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckService{
		learners: learners,
		words:    words,
		states:   states,
		clock:    clock,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "deck_service")),
	}
}

// BuildDeck implements Service.BuildDeck.
func (s *deckService) BuildDeck(ctx context.Context, req Request) (*Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, today := srs.NowAndToday(s.clock)
	limit := s.normalizeLimit(req.Limit)
	deck := &Deck{Date: today, Cards: []Card{}}

	learner, err := s.learners.GetByName(ctx, req.LearnerName)
	if err != nil {
		if errors.Is(err, store.ErrLearnerNotFound) {
			log.Debug("deck requested for unknown learner", slog.String("learner", req.LearnerName))
			deck.EmptyReason = EmptyReasonNoTags
			return deck, nil
		}
		log.Error("failed to load learner", redact.Attr(err), slog.String("learner", req.LearnerName))
		return nil, fmt.Errorf("failed to load learner: %w", err)
	}

	pool, err := s.words.PoolForLearner(ctx, learner.ID, req.Tags)
	if err != nil {
		log.Error("failed to load word pool", redact.Attr(err), slog.Int64("learner_id", learner.ID))
		return nil, fmt.Errorf("failed to load word pool: %w", err)
	}
	if len(pool) == 0 {
		deck.EmptyReason = EmptyReasonNoWords
		return deck, nil
	}

	wordIDs := make([]int64, len(pool))
	for i, w := range pool {
		wordIDs[i] = w.ID
	}
	states, err := s.states.ListForLearner(ctx, learner.ID, wordIDs)
	if err != nil {
		log.Error("failed to load review states", redact.Attr(err), slog.Int64("learner_id", learner.ID))
		return nil, fmt.Errorf("failed to load review states: %w", err)
	}

	deck.Cards = Build(learner.ID, pool, states, today, limit)

	log.Info("deck built",
		slog.Int64("learner_id", learner.ID),
		slog.String("date", today.Format("2006-01-02")),
		slog.Int("pool_size", len(pool)),
		slog.Int("known", len(states)),
		slog.Int("cards", len(deck.Cards)),
		slog.Int("limit", limit))
	return deck, nil
}

func (s *deckService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	return min(limit, s.cfg.MaxLimit)
}
