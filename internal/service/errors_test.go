package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("ErrLearnerNotFound", func(t *testing.T) {
		assert.Equal(t, "learner not found", ErrLearnerNotFound.Error())
	})

	t.Run("ErrWordNotFound", func(t *testing.T) {
		assert.Equal(t, "word not found", ErrWordNotFound.Error())
	})

	t.Run("sentinel errors are different", func(t *testing.T) {
		assert.False(t, errors.Is(ErrLearnerNotFound, ErrWordNotFound))
		assert.False(t, errors.Is(ErrWordNotFound, ErrLearnerNotFound))
	})
}

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "reward",
			op:       "redeem",
			err:      errors.New("database connection failed"),
			expected: "reward service redeem operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "reward",
			op:       "summary",
			err:      nil,
			expected: "reward service summary operation failed",
		},
		{
			name:     "with sentinel error",
			service:  "reward",
			op:       "history_page",
			err:      ErrLearnerNotFound,
			expected: "reward service history_page operation failed: learner not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewServiceError(tt.service, tt.op, tt.err).Error())
		})
	}
}

func TestServiceError_ErrorsIs(t *testing.T) {
	underlyingErr := errors.New("database connection failed")
	serviceErr := NewServiceError("reward", "redeem", underlyingErr)

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		assert.True(t, errors.Is(serviceErr, underlyingErr))
	})

	t.Run("errors.As finds the service error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), serviceErr)
		var target *ServiceError
		assert.True(t, errors.As(wrapped, &target))
		assert.Equal(t, "redeem", target.Op)
	})
}
