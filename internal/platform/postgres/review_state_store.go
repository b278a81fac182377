package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// dateLayout is how calendar dates are passed to DATE columns.
const dateLayout = "2006-01-02"

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of the ReviewStateStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore interface
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

var reviewStateColumns = []string{
	"learner_id",
	"word_id",
	"repetitions",
	"interval_days",
	"ease_factor",
	"due_date",
	"last_reviewed_at",
	"status",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReviewState(row rowScanner) (*domain.ReviewState, error) {
	var (
		s            domain.ReviewState
		status       string
		dueDate      sql.NullTime
		lastReviewed sql.NullTime
	)

	err := row.Scan(
		&s.LearnerID,
		&s.WordID,
		&s.Repetitions,
		&s.IntervalDays,
		&s.EaseFactor,
		&dueDate,
		&lastReviewed,
		&status,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Status = domain.ReviewStatus(status)
	if dueDate.Valid {
		y, m, d := dueDate.Time.Date()
		s.DueDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if lastReviewed.Valid {
		s.LastReviewedAt = lastReviewed.Time.UTC()
	}
	return &s, nil
}

// Get implements store.ReviewStateStore.Get
func (s *PostgresReviewStateStore) Get(ctx context.Context, learnerID, wordID int64) (*domain.ReviewState, error) {
	return s.getOne(ctx, "get", learnerID, wordID, false)
}

// GetForUpdate implements store.ReviewStateStore.GetForUpdate
func (s *PostgresReviewStateStore) GetForUpdate(
	ctx context.Context,
	learnerID, wordID int64,
) (*domain.ReviewState, error) {
	return s.getOne(ctx, "get_for_update", learnerID, wordID, true)
}

func (s *PostgresReviewStateStore) getOne(
	ctx context.Context,
	op string,
	learnerID, wordID int64,
	forUpdate bool,
) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := psql.
		Select(reviewStateColumns...).
		From("review_states").
		Where(squirrel.Eq{"learner_id": learnerID, "word_id": wordID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build review state query: %w", err)
	}

	state, err := scanReviewState(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review state not found",
				slog.Int64("learner_id", learnerID),
				slog.Int64("word_id", wordID))
			return nil, store.ErrReviewStateNotFound
		}
		log.Error("failed to get review state",
			slog.String("operation", op),
			redact.Attr(err),
			slog.Int64("learner_id", learnerID),
			slog.Int64("word_id", wordID))
		return nil, store.NewStoreError("review_state", op, "query failed", MapError(err))
	}

	return state, nil
}

// ListForLearner implements store.ReviewStateStore.ListForLearner
func (s *PostgresReviewStateStore) ListForLearner(
	ctx context.Context,
	learnerID int64,
	wordIDs []int64,
) (map[int64]*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	states := make(map[int64]*domain.ReviewState, len(wordIDs))
	if len(wordIDs) == 0 {
		return states, nil
	}

	query, args, err := psql.
		Select(reviewStateColumns...).
		From("review_states").
		Where(squirrel.Eq{"learner_id": learnerID, "word_id": wordIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build review state list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list review states", redact.Attr(err), slog.Int64("learner_id", learnerID))
		return nil, store.NewStoreError("review_state", "list_for_learner", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		state, err := scanReviewState(rows)
		if err != nil {
			return nil, store.NewStoreError("review_state", "list_for_learner", "scan failed", err)
		}
		states[state.WordID] = state
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("review_state", "list_for_learner", "iteration failed", err)
	}

	return states, nil
}

// Upsert implements store.ReviewStateStore.Upsert
func (s *PostgresReviewStateStore) Upsert(ctx context.Context, state *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("review state validation failed during upsert",
			redact.Attr(err),
			slog.Int64("learner_id", state.LearnerID),
			slog.Int64("word_id", state.WordID))
		return err
	}

	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := psql.
		Insert("review_states").
		Columns(reviewStateColumns...).
		Values(
			state.LearnerID,
			state.WordID,
			state.Repetitions,
			state.IntervalDays,
			state.EaseFactor,
			nullDate(state.DueDate),
			nullTime(state.LastReviewedAt),
			string(state.Status),
			updatedAt,
		).
		Suffix(`ON CONFLICT (learner_id, word_id) DO UPDATE SET
			repetitions = EXCLUDED.repetitions,
			interval_days = EXCLUDED.interval_days,
			ease_factor = EXCLUDED.ease_factor,
			due_date = EXCLUDED.due_date,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review state upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to upsert review state",
			redact.Attr(err),
			slog.Int64("learner_id", state.LearnerID),
			slog.Int64("word_id", state.WordID))
		return store.NewStoreError("review_state", "upsert", "write failed", MapError(err))
	}

	log.Debug("review state saved",
		slog.Int64("learner_id", state.LearnerID),
		slog.Int64("word_id", state.WordID),
		slog.Int("interval_days", state.IntervalDays),
		slog.Float64("ease_factor", state.EaseFactor))
	return nil
}

// WithTx implements store.ReviewStateStore.WithTx
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{
		db:     tx,
		logger: s.logger,
	}
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
