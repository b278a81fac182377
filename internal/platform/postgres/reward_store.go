package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// PostgresRewardStore implements the store.RewardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRewardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRewardStore creates a new PostgreSQL implementation of the RewardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRewardStore(db store.DBTX, logger *slog.Logger) *PostgresRewardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRewardStore{
		db:     db,
		logger: logger.With(slog.String("component", "reward_store")),
	}
}

// Ensure PostgresRewardStore implements store.RewardStore interface
var _ store.RewardStore = (*PostgresRewardStore)(nil)

// Append implements store.RewardStore.Append
func (s *PostgresRewardStore) Append(ctx context.Context, entry *domain.RewardEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("reward entry validation failed",
			redact.Attr(err),
			slog.Int64("learner_id", entry.LearnerID))
		return err
	}

	query, args, err := psql.
		Insert("reward_ledger").
		Columns("id", "learner_id", "action", "points", "reason", "created_at").
		Values(entry.ID, entry.LearnerID, string(entry.Action), entry.Points, entry.Reason, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to append reward entry",
			redact.Attr(err),
			slog.Int64("learner_id", entry.LearnerID),
			slog.String("action", string(entry.Action)))
		return store.NewStoreError("reward", "append", "write failed", MapError(err))
	}

	log.Debug("reward entry appended",
		slog.String("entry_id", entry.ID.String()),
		slog.Int64("learner_id", entry.LearnerID),
		slog.String("action", string(entry.Action)),
		slog.Int("points", entry.Points))
	return nil
}

// ListForLearner implements store.RewardStore.ListForLearner
func (s *PostgresRewardStore) ListForLearner(
	ctx context.Context,
	learnerID int64,
	limit, offset int,
) ([]*domain.RewardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.
		Select("id", "learner_id", "action", "points", "COALESCE(reason, '')", "created_at").
		From("reward_ledger").
		Where(squirrel.Eq{"learner_id": learnerID}).
		OrderBy("created_at DESC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list reward entries", redact.Attr(err), slog.Int64("learner_id", learnerID))
		return nil, store.NewStoreError("reward", "list_for_learner", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.RewardEntry
	for rows.Next() {
		var (
			e      domain.RewardEntry
			action string
		)
		if err := rows.Scan(&e.ID, &e.LearnerID, &action, &e.Points, &e.Reason, &e.CreatedAt); err != nil {
			return nil, store.NewStoreError("reward", "list_for_learner", "scan failed", err)
		}
		e.Action = domain.RewardAction(action)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("reward", "list_for_learner", "iteration failed", err)
	}

	return entries, nil
}

// CountForLearner implements store.RewardStore.CountForLearner
func (s *PostgresRewardStore) CountForLearner(ctx context.Context, learnerID int64) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("reward_ledger").
		Where(squirrel.Eq{"learner_id": learnerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build reward count query: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to count reward entries", redact.Attr(err), slog.Int64("learner_id", learnerID))
		return 0, store.NewStoreError("reward", "count_for_learner", "query failed", MapError(err))
	}
	return n, nil
}

// WithTx implements store.RewardStore.WithTx
func (s *PostgresRewardStore) WithTx(tx *sql.Tx) store.RewardStore {
	return &PostgresRewardStore{
		db:     tx,
		logger: s.logger,
	}
}
