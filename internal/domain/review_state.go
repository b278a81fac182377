package domain

import (
	"errors"
	"time"
)

// Quality is the learner's self-rated recall for one review on a 0..5 scale.
// Clients send one of Again, Hard, Good or Easy.
type Quality int

// Quality values used by clients.
const (
	QualityAgain Quality = 0
	QualityHard  Quality = 1
	QualityGood  Quality = 3
	QualityEasy  Quality = 5
)

// Bounds of the quality scale. A review with quality below PassingQuality
// counts as a failure.
const (
	MinQuality     Quality = 0
	MaxQuality     Quality = 5
	PassingQuality Quality = 3
)

// ClampQuality forces q into [MinQuality, MaxQuality].
func ClampQuality(q int) Quality {
	if q < int(MinQuality) {
		return MinQuality
	}
	if q > int(MaxQuality) {
		return MaxQuality
	}
	return Quality(q)
}

// Passed reports whether the review counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= PassingQuality
}

// ReviewStatus is informational only; scheduling never branches on it.
type ReviewStatus string

// Possible review status values
const (
	ReviewStatusNew      ReviewStatus = "new"
	ReviewStatusLearning ReviewStatus = "learning"
	ReviewStatusReview   ReviewStatus = "review"
)

// Valid reports whether s is a known status.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusNew, ReviewStatusLearning, ReviewStatusReview:
		return true
	default:
		return false
	}
}

// Scheduling defaults shared by the scheduler and the deck builder.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Common validation errors for ReviewState
var (
	ErrEmptyStateLearnerID = errors.New("review state learner ID cannot be empty")
	ErrEmptyStateWordID    = errors.New("review state word ID cannot be empty")
	ErrInvalidRepetitions  = errors.New("repetitions must be greater than or equal to 0")
	ErrInvalidInterval     = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor   = errors.New("ease factor must be at least 1.3")
	ErrInvalidReviewStatus = errors.New("invalid review status")
)

// ReviewState is the per (learner, word) memory-strength record. A row only
// exists once the learner has reviewed the word at least once.
//
// DueDate is a calendar date (midnight UTC). A zero DueDate or LastReviewedAt
// means the value was never set.
type ReviewState struct {
	LearnerID      int64        `json:"learner_id"`
	WordID         int64        `json:"word_id"`
	Repetitions    int          `json:"repetitions"`
	IntervalDays   int          `json:"interval_days"`
	EaseFactor     float64      `json:"ease_factor"`
	DueDate        time.Time    `json:"due_date"`
	LastReviewedAt time.Time    `json:"last_reviewed_at"`
	Status         ReviewStatus `json:"status"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewReviewState returns the default state of a word the learner has never
// studied.
func NewReviewState(learnerID, wordID int64) *ReviewState {
	return &ReviewState{
		LearnerID:    learnerID,
		WordID:       wordID,
		Repetitions:  0,
		IntervalDays: 0,
		EaseFactor:   DefaultEaseFactor,
		Status:       ReviewStatusNew,
	}
}

// Validate checks if the ReviewState has valid data.
func (s *ReviewState) Validate() error {
	if s.LearnerID <= 0 {
		return ErrEmptyStateLearnerID
	}
	if s.WordID <= 0 {
		return ErrEmptyStateWordID
	}
	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	if s.IntervalDays < 0 {
		return ErrInvalidInterval
	}
	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}
	if !s.Status.Valid() {
		return ErrInvalidReviewStatus
	}
	return nil
}

// EffectiveDueDate returns the due date, treating an unset one as today.
func (s *ReviewState) EffectiveDueDate(today time.Time) time.Time {
	if s.DueDate.IsZero() {
		return today
	}
	return s.DueDate
}

// IsDue reports whether the card is eligible for review on today.
func (s *ReviewState) IsDue(today time.Time) bool {
	return !s.EffectiveDueDate(today).After(today)
}

// Clone returns a copy of s.
func (s *ReviewState) Clone() *ReviewState {
	c := *s
	return &c
}
