package store

import (
	"context"
	"database/sql"

	"github.com/spellwise/vocab-api/internal/domain"
)

// WordStore defines the interface for reading words and the tag-derived
// word pool of a learner.
type WordStore interface {
	// GetByID retrieves a word by ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Word, error)

	// PoolForLearner returns the distinct words linked to any tag assigned
	// to the learner, ordered by word ID. When tags is non-empty only those
	// tags (among the learner's own) are considered. An empty result is not
	// an error.
	PoolForLearner(ctx context.Context, learnerID int64, tags []string) ([]domain.Word, error)

	// WithTx returns a new WordStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WordStore
}
