package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, text, language FROM words WHERE id = $1`

	var w domain.Word
	err := s.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Text, &w.Language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.Int64("word_id", id))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word", redact.Attr(err), slog.Int64("word_id", id))
		return nil, store.NewStoreError("word", "get_by_id", "query failed", MapError(err))
	}

	return &w, nil
}

// PoolForLearner implements store.WordStore.PoolForLearner
//
// The pool is the distinct set of words sharing at least one tag with the
// learner, in word ID order.
func (s *PostgresWordStore) PoolForLearner(ctx context.Context, learnerID int64, tags []string) ([]domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := psql.
		Select("DISTINCT w.id", "w.text", "w.language").
		From("words w").
		Join("word_tags wt ON wt.word_id = w.id").
		Join("learner_tags lt ON lt.tag_id = wt.tag_id").
		Where(squirrel.Eq{"lt.learner_id": learnerID}).
		OrderBy("w.id ASC")

	if len(tags) > 0 {
		builder = builder.
			Join("tags t ON t.id = lt.tag_id").
			Where(squirrel.Eq{"t.name": tags})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build word pool query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query word pool", redact.Attr(err), slog.Int64("learner_id", learnerID))
		return nil, store.NewStoreError("word", "pool_for_learner", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Text, &w.Language); err != nil {
			return nil, store.NewStoreError("word", "pool_for_learner", "scan failed", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "pool_for_learner", "iteration failed", err)
	}

	log.Debug("word pool loaded",
		slog.Int64("learner_id", learnerID),
		slog.Int("tag_filter", len(tags)),
		slog.Int("size", len(words)))
	return words, nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}
