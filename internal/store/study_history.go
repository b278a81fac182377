package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
)

// StudyHistoryStore keeps the cumulative per-word study counters.
type StudyHistoryStore interface {
	// Increment adds one to the counter for (learner, word), creating it at 1
	// if absent, sets last_studied_at to at and returns the updated record.
	Increment(ctx context.Context, learnerID, wordID int64, at time.Time) (*domain.StudyHistory, error)

	// ListForLearner returns up to limit records, most recently studied first.
	ListForLearner(ctx context.Context, learnerID int64, limit int) ([]*domain.StudyHistory, error)

	// WithTx returns a new StudyHistoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StudyHistoryStore
}
