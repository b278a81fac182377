package srs

import (
	"math"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease update for a review of the
// given quality.
//
// The update runs on every review, failures included, so repeated failures
// drive the ease factor down to params.MinEaseFactor and keep it there.
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// A perfect recall (q=5) adds 0.1, q=4 leaves the factor unchanged and
// everything below lowers it.
func calculateNewEaseFactor(currentEF float64, quality domain.Quality, params *Params) float64 {
	d := float64(domain.MaxQuality - quality)
	newEF := currentEF + (params.EaseBonus - d*(params.EasePenaltyBase+d*params.EasePenaltyStep))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next interval in days and the new
// repetition count.
//
// Algorithm behavior:
//   - A failed review restarts the streak: repetitions become 0 and the
//     interval becomes params.FailureInterval, however long the streak was
//   - The first success of a streak yields params.FirstInterval
//   - The second success yields params.SecondInterval
//   - Later successes multiply the current interval by the ease factor held
//     before this review, rounding half to even
func calculateNewInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	quality domain.Quality,
	params *Params,
) (interval int, newRepetitions int) {
	if quality < params.PassingQuality {
		return params.FailureInterval, 0
	}

	switch repetitions {
	case 0:
		interval = params.FirstInterval
	case 1:
		interval = params.SecondInterval
	default:
		interval = int(math.RoundToEven(float64(currentInterval) * easeFactor))
	}

	return interval, repetitions + 1
}

// calculateDueDate returns today plus interval calendar days.
func calculateDueDate(today time.Time, interval int) time.Time {
	return today.AddDate(0, 0, interval)
}

// calculateNextState builds the state that results from one review.
//
// The input state is never modified. The interval uses the ease factor held
// before the review; the ease factor is then updated. The due date is
// anchored on today, and last_reviewed_at on now.
func calculateNextState(
	state *domain.ReviewState,
	quality domain.Quality,
	now time.Time,
	today time.Time,
	params *Params,
) *domain.ReviewState {
	next := state.Clone()

	next.IntervalDays, next.Repetitions = calculateNewInterval(
		state.IntervalDays,
		state.Repetitions,
		state.EaseFactor,
		quality,
		params,
	)
	next.EaseFactor = calculateNewEaseFactor(state.EaseFactor, quality, params)
	next.DueDate = calculateDueDate(today, next.IntervalDays)
	next.LastReviewedAt = now
	next.Status = domain.ReviewStatusReview
	next.UpdatedAt = now

	return next
}
