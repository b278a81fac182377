package store

import (
	"context"
	"database/sql"

	"github.com/spellwise/vocab-api/internal/domain"
)

// LeaderboardScope narrows a leaderboard to one school and/or grade. Empty
// fields match every learner. Matching ignores case and surrounding space.
type LeaderboardScope struct {
	School string
	Grade  string
}

// LearnerStore defines the interface for learner data persistence.
type LearnerStore interface {
	// Create saves a new learner. Returns ErrLearnerNameExists if the name is taken.
	Create(ctx context.Context, learner *domain.Learner) error

	// GetByID retrieves a learner by ID.
	// Returns ErrLearnerNotFound if the learner does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Learner, error)

	// GetByName retrieves a learner by unique name.
	// Returns ErrLearnerNotFound if the learner does not exist.
	GetByName(ctx context.Context, name string) (*domain.Learner, error)

	// GetByNameForUpdate retrieves a learner with a row-level lock (SELECT FOR UPDATE).
	// It must run inside a transaction. Locking the learner serializes every
	// point change and review submission for that learner.
	GetByNameForUpdate(ctx context.Context, name string) (*domain.Learner, error)

	// AddPoints adds delta (which may be negative) to the learner's balance
	// and returns the new total. A positive delta also stamps
	// last_point_earned_at. Returns ErrLearnerNotFound if the learner
	// does not exist and ErrInvalidEntity if the balance would go negative.
	AddPoints(ctx context.Context, id int64, delta int) (int, error)

	// Leaderboard returns up to limit learners in scope ordered by points
	// (descending), then most recent point earned, then name.
	Leaderboard(ctx context.Context, scope LeaderboardScope, limit int) ([]domain.LeaderboardEntry, error)

	// Standing returns the learner's place in the scoped leaderboard, using
	// the same ordering as Leaderboard. Returns ErrLearnerNotFound if the
	// learner is not in scope.
	Standing(ctx context.Context, name string, scope LeaderboardScope) (*domain.LeaderboardEntry, error)

	// Schools lists distinct non-blank schools, upper-cased and sorted.
	Schools(ctx context.Context) ([]string, error)

	// Grades lists distinct non-blank grades, upper-cased and sorted,
	// optionally restricted to one school.
	Grades(ctx context.Context, school string) ([]string, error)

	// WithTx returns a new LearnerStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LearnerStore
}
