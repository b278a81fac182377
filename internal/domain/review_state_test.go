package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampQuality(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   int
		want Quality
	}{
		{in: -10, want: 0},
		{in: -1, want: 0},
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: 3, want: 3},
		{in: 5, want: 5},
		{in: 6, want: 5},
		{in: 100, want: 5},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, ClampQuality(tc.in), "ClampQuality(%d)", tc.in)
	}
}

func TestQualityPassed(t *testing.T) {
	t.Parallel()

	assert.False(t, QualityAgain.Passed())
	assert.False(t, QualityHard.Passed())
	assert.False(t, Quality(2).Passed())
	assert.True(t, QualityGood.Passed())
	assert.True(t, Quality(4).Passed())
	assert.True(t, QualityEasy.Passed())
}

func TestNewReviewState(t *testing.T) {
	t.Parallel()

	s := NewReviewState(7, 11)

	assert.Equal(t, int64(7), s.LearnerID)
	assert.Equal(t, int64(11), s.WordID)
	assert.Equal(t, 0, s.Repetitions)
	assert.Equal(t, 0, s.IntervalDays)
	assert.Equal(t, DefaultEaseFactor, s.EaseFactor)
	assert.Equal(t, ReviewStatusNew, s.Status)
	assert.True(t, s.DueDate.IsZero())
	assert.True(t, s.LastReviewedAt.IsZero())
	assert.NoError(t, s.Validate())
}

func TestReviewStateValidate(t *testing.T) {
	t.Parallel()

	valid := func() *ReviewState { return NewReviewState(1, 2) }

	testCases := []struct {
		name   string
		mutate func(s *ReviewState)
		want   error
	}{
		{name: "valid", mutate: func(s *ReviewState) {}, want: nil},
		{name: "missing learner", mutate: func(s *ReviewState) { s.LearnerID = 0 }, want: ErrEmptyStateLearnerID},
		{name: "missing word", mutate: func(s *ReviewState) { s.WordID = 0 }, want: ErrEmptyStateWordID},
		{name: "negative repetitions", mutate: func(s *ReviewState) { s.Repetitions = -1 }, want: ErrInvalidRepetitions},
		{name: "negative interval", mutate: func(s *ReviewState) { s.IntervalDays = -1 }, want: ErrInvalidInterval},
		{name: "ease below floor", mutate: func(s *ReviewState) { s.EaseFactor = 1.29 }, want: ErrInvalidEaseFactor},
		{name: "unknown status", mutate: func(s *ReviewState) { s.Status = "lapsed" }, want: ErrInvalidReviewStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(s)
			err := s.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReviewStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ReviewStatus{ReviewStatusNew, ReviewStatusLearning, ReviewStatusReview} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ReviewStatus("lapsed").Valid())
	assert.False(t, ReviewStatus("").Valid())
}

func TestReviewStateIsDue(t *testing.T) {
	t.Parallel()
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s := NewReviewState(1, 2)
	assert.True(t, s.IsDue(today), "unset due date counts as today")
	assert.Equal(t, today, s.EffectiveDueDate(today))

	s.DueDate = today.AddDate(0, 0, -1)
	assert.True(t, s.IsDue(today))

	s.DueDate = today
	assert.True(t, s.IsDue(today))

	s.DueDate = today.AddDate(0, 0, 1)
	assert.False(t, s.IsDue(today))
}

func TestReviewStateClone(t *testing.T) {
	t.Parallel()

	s := NewReviewState(1, 2)
	c := s.Clone()
	c.Repetitions = 3

	assert.NotSame(t, s, c)
	assert.Equal(t, 0, s.Repetitions)
}
