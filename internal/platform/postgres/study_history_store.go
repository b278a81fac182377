package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// PostgresStudyHistoryStore implements the store.StudyHistoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudyHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyHistoryStore creates a new PostgreSQL implementation of the StudyHistoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudyHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresStudyHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_history_store")),
	}
}

// Ensure PostgresStudyHistoryStore implements store.StudyHistoryStore interface
var _ store.StudyHistoryStore = (*PostgresStudyHistoryStore)(nil)

// Increment implements store.StudyHistoryStore.Increment
func (s *PostgresStudyHistoryStore) Increment(
	ctx context.Context,
	learnerID, wordID int64,
	at time.Time,
) (*domain.StudyHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO study_history (learner_id, word_id, count, last_studied_at)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			count = study_history.count + 1,
			last_studied_at = EXCLUDED.last_studied_at
		RETURNING learner_id, word_id, count, last_studied_at
	`

	var h domain.StudyHistory
	err := s.db.QueryRowContext(ctx, query, learnerID, wordID, at).
		Scan(&h.LearnerID, &h.WordID, &h.Count, &h.LastStudiedAt)
	if err != nil {
		log.Error("failed to increment study history",
			redact.Attr(err),
			slog.Int64("learner_id", learnerID),
			slog.Int64("word_id", wordID))
		return nil, store.NewStoreError("study_history", "increment", "write failed", MapError(err))
	}

	return &h, nil
}

// ListForLearner implements store.StudyHistoryStore.ListForLearner
func (s *PostgresStudyHistoryStore) ListForLearner(
	ctx context.Context,
	learnerID int64,
	limit int,
) ([]*domain.StudyHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT learner_id, word_id, count, last_studied_at
		FROM study_history
		WHERE learner_id = $1
		ORDER BY last_studied_at DESC NULLS LAST, word_id ASC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		log.Error("failed to list study history", redact.Attr(err), slog.Int64("learner_id", learnerID))
		return nil, store.NewStoreError("study_history", "list_for_learner", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.StudyHistory
	for rows.Next() {
		var (
			h    domain.StudyHistory
			last sql.NullTime
		)
		if err := rows.Scan(&h.LearnerID, &h.WordID, &h.Count, &last); err != nil {
			return nil, store.NewStoreError("study_history", "list_for_learner", "scan failed", err)
		}
		if last.Valid {
			h.LastStudiedAt = last.Time
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("study_history", "list_for_learner", "iteration failed", err)
	}

	return out, nil
}

// WithTx implements store.StudyHistoryStore.WithTx
func (s *PostgresStudyHistoryStore) WithTx(tx *sql.Tx) store.StudyHistoryStore {
	return &PostgresStudyHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}
