package srs

import (
	"errors"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
)

// Common errors
var (
	ErrNilState = errors.New("review state cannot be nil")
)

// Service defines the interface for SRS scheduling operations
type Service interface {
	// CalculateNextReview returns the state that results from reviewing the
	// card with the given quality. Quality outside [0,5] is clamped.
	// now stamps last_reviewed_at and today anchors the due date.
	CalculateNextReview(
		state *domain.ReviewState,
		quality int,
		now time.Time,
		today time.Time,
	) (*domain.ReviewState, error)

	// NewState returns the default state for a word never reviewed.
	NewState(learnerID, wordID int64) *domain.ReviewState
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements the Service interface
func (s *defaultService) CalculateNextReview(
	state *domain.ReviewState,
	quality int,
	now time.Time,
	today time.Time,
) (*domain.ReviewState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	return calculateNextState(state, domain.ClampQuality(quality), now, today, s.params), nil
}

// NewState implements the Service interface
func (s *defaultService) NewState(learnerID, wordID int64) *domain.ReviewState {
	state := domain.NewReviewState(learnerID, wordID)
	state.EaseFactor = s.params.DefaultEaseFactor
	return state
}
