package store

import (
	"context"
	"database/sql"

	"github.com/spellwise/vocab-api/internal/domain"
)

// ReviewStateStore defines the interface for per (learner, word) review
// state persistence. Rows are created on first review and never deleted here.
type ReviewStateStore interface {
	// Get retrieves the state for a learner and word.
	// Returns ErrReviewStateNotFound if the learner has never reviewed the word.
	// NOTE: This method does NOT lock the row; use GetForUpdate before a
	// read-modify-write.
	Get(ctx context.Context, learnerID, wordID int64) (*domain.ReviewState, error)

	// GetForUpdate retrieves the state with a row-level lock (SELECT FOR UPDATE).
	// It must run inside a transaction.
	// Returns ErrReviewStateNotFound if the row does not exist.
	GetForUpdate(ctx context.Context, learnerID, wordID int64) (*domain.ReviewState, error)

	// ListForLearner returns the learner's states for the given words, keyed
	// by word ID. Words without a state are absent from the map.
	ListForLearner(ctx context.Context, learnerID int64, wordIDs []int64) (map[int64]*domain.ReviewState, error)

	// Upsert inserts the state or overwrites the existing row for the same
	// (learner, word). Returns validation errors if the state is invalid.
	Upsert(ctx context.Context, state *domain.ReviewState) error

	// WithTx returns a new ReviewStateStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewStateStore
}
