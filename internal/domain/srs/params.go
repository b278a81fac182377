package srs

import "github.com/spellwise/vocab-api/internal/domain"

// Params defines all configurable parameters for the SM-2 scheduler
type Params struct {
	// Core limits
	MinEaseFactor     float64
	DefaultEaseFactor float64

	// Quality at or above which a review counts as a successful recall
	PassingQuality domain.Quality

	// Fixed intervals (days) for the early part of a streak
	FailureInterval int
	FirstInterval   int
	SecondInterval  int

	// Ease factor delta: EaseBonus - d*(EasePenaltyBase + d*EasePenaltyStep),
	// where d = MaxQuality - quality
	EaseBonus       float64
	EasePenaltyBase float64
	EasePenaltyStep float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	MinEaseFactor     float64
	DefaultEaseFactor float64

	FailureInterval int
	FirstInterval   int
	SecondInterval  int
}

// NewDefaultParams creates a new Params instance with the classic SM-2 values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     domain.MinEaseFactor,
		DefaultEaseFactor: domain.DefaultEaseFactor,

		PassingQuality: domain.PassingQuality,

		FailureInterval: 1,
		FirstInterval:   1,
		SecondInterval:  6,

		EaseBonus:       0.1,
		EasePenaltyBase: 0.08,
		EasePenaltyStep: 0.02,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.DefaultEaseFactor > 0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}
	if config.FailureInterval > 0 {
		params.FailureInterval = config.FailureInterval
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	return params
}
