package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RewardAction distinguishes point grants from redemptions in the ledger.
type RewardAction string

// Possible reward actions
const (
	RewardActionEarn   RewardAction = "earn"
	RewardActionRedeem RewardAction = "redeem"
)

// Reasons recorded on ledger entries written by the system.
const (
	RewardReasonStudy = "study"
)

// Common validation errors for RewardEntry
var (
	ErrInvalidRewardAction = errors.New("invalid reward action")
	ErrNonPositivePoints   = errors.New("points must be positive")
	ErrInsufficientPoints  = errors.New("insufficient points")
)

// RewardEntry is one line of a learner's points ledger. Earn entries carry
// positive points and redeem entries negative points.
type RewardEntry struct {
	ID        uuid.UUID    `json:"id"`
	LearnerID int64        `json:"learner_id"`
	Action    RewardAction `json:"action"`
	Points    int          `json:"points"`
	Reason    string       `json:"reason,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewEarnEntry creates a ledger entry granting points.
func NewEarnEntry(learnerID int64, points int, reason string, now time.Time) (*RewardEntry, error) {
	if points <= 0 {
		return nil, ErrNonPositivePoints
	}
	return &RewardEntry{
		ID:        uuid.New(),
		LearnerID: learnerID,
		Action:    RewardActionEarn,
		Points:    points,
		Reason:    reason,
		CreatedAt: now,
	}, nil
}

// NewRedeemEntry creates a ledger entry spending points on item.
func NewRedeemEntry(learnerID int64, points int, item string, now time.Time) (*RewardEntry, error) {
	if points <= 0 {
		return nil, ErrNonPositivePoints
	}
	return &RewardEntry{
		ID:        uuid.New(),
		LearnerID: learnerID,
		Action:    RewardActionRedeem,
		Points:    -points,
		Reason:    item,
		CreatedAt: now,
	}, nil
}

// Validate checks if the RewardEntry has valid data.
func (e *RewardEntry) Validate() error {
	switch e.Action {
	case RewardActionEarn:
		if e.Points <= 0 {
			return ErrNonPositivePoints
		}
	case RewardActionRedeem:
		if e.Points >= 0 {
			return ErrNonPositivePoints
		}
	default:
		return ErrInvalidRewardAction
	}
	if e.LearnerID <= 0 {
		return ErrInvalidID
	}
	return nil
}
