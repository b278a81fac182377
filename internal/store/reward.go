package store

import (
	"context"
	"database/sql"

	"github.com/spellwise/vocab-api/internal/domain"
)

// RewardStore is the append-only points ledger.
type RewardStore interface {
	// Append writes a ledger entry. Returns validation errors if the entry is invalid.
	Append(ctx context.Context, entry *domain.RewardEntry) error

	// ListForLearner returns entries newest first, skipping offset entries
	// and returning at most limit.
	ListForLearner(ctx context.Context, learnerID int64, limit, offset int) ([]*domain.RewardEntry, error)

	// CountForLearner returns the number of ledger entries of the learner.
	CountForLearner(ctx context.Context, learnerID int64) (int, error)

	// WithTx returns a new RewardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RewardStore
}
