package review

import (
	"fmt"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/domain/srs"
)

// Effect is one write produced by a review. The concrete types below are
// the only implementations.
type Effect interface {
	effect()
}

// SaveState upserts the rescheduled review state.
type SaveState struct {
	State *domain.ReviewState
}

// RecordStudy increments the study-history counter of the word.
type RecordStudy struct {
	LearnerID int64
	WordID    int64
	At        time.Time
}

// GrantPoints adds points to the learner's balance.
type GrantPoints struct {
	LearnerID int64
	Points    int
}

// AppendLedger writes an entry to the points ledger.
type AppendLedger struct {
	Entry *domain.RewardEntry
}

func (SaveState) effect()    {}
func (RecordStudy) effect()  {}
func (GrantPoints) effect()  {}
func (AppendLedger) effect() {}

// Outcome is the full set of writes one review causes. Either all effects
// are applied or none are.
type Outcome struct {
	State   *domain.ReviewState
	Effects []Effect
}

// PlanOutcome computes the writes for learner reviewing current with quality.
// It performs no I/O.
func PlanOutcome(
	scheduler srs.Service,
	learner *domain.Learner,
	current *domain.ReviewState,
	quality int,
	now, today time.Time,
) (*Outcome, error) {
	next, err := scheduler.CalculateNextReview(current, quality, now, today)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate next review: %w", err)
	}
	next.UpdatedAt = now

	entry, err := domain.NewEarnEntry(learner.ID, PointsPerReview, domain.RewardReasonStudy, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return &Outcome{
		State: next,
		Effects: []Effect{
			SaveState{State: next},
			RecordStudy{LearnerID: learner.ID, WordID: next.WordID, At: now},
			GrantPoints{LearnerID: learner.ID, Points: PointsPerReview},
			AppendLedger{Entry: entry},
		},
	}, nil
}
