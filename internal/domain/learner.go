package domain

import (
	"errors"
	"strings"
	"time"
)

// Common validation errors for Learner
var (
	ErrEmptyLearnerName   = errors.New("learner name cannot be empty")
	ErrNegativePoints     = errors.New("total points cannot be negative")
	ErrLearnerNameTooLong = errors.New("learner name must be at most 100 characters long")
)

const maxLearnerNameLength = 100

// Learner is a student using the vocabulary trainer. Learners are addressed
// by their unique name.
type Learner struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
	// School and Grade are optional profile fields used to scope leaderboards.
	School string `json:"school,omitempty"`
	Grade  string `json:"grade,omitempty"`
	// LastPointEarnedAt is the last time the balance grew. Nil until the
	// learner earns a first point.
	LastPointEarnedAt *time.Time `json:"last_point_earned_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// LeaderboardEntry is one learner's place on a leaderboard. Rank is 1-based;
// zero means the learner is outside the board's scope.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
	School      string `json:"school"`
	Grade       string `json:"grade"`
}

// Ranked reports whether the entry holds a place on the board.
func (e LeaderboardEntry) Ranked() bool {
	return e.Rank > 0
}

// Validate checks if the Learner has valid data.
func (l *Learner) Validate() error {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return ErrEmptyLearnerName
	}
	if len(name) > maxLearnerNameLength {
		return ErrLearnerNameTooLong
	}
	if l.TotalPoints < 0 {
		return ErrNegativePoints
	}
	return nil
}
