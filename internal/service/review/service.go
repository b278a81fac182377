package review

import (
	"context"
	"fmt"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/service"
)

// PointsPerReview is granted on every submission, whatever the quality.
const PointsPerReview = 1

// Submission is one answered card.
type Submission struct {
	LearnerName string
	WordID      int64
	// Quality is the raw rating sent by the client. Values outside [0,5] are
	// clamped.
	Quality int
}

// Result is what a successful submission returns.
type Result struct {
	UpdatedState  *domain.ReviewState
	PointsAwarded int
	TotalPoints   int
}

// Service records reviews.
type Service interface {
	// SubmitReview schedules the next review of the word, bumps the study
	// counter and grants PointsPerReview, all in one transaction.
	//
	// Returns ErrLearnerNotFound or ErrWordNotFound if either does not exist,
	// in which case nothing is written. Any other failure is a *ServiceError
	// and also leaves no partial writes.
	SubmitReview(ctx context.Context, sub Submission) (*Result, error)
}

// Common error types for the review Service
var (
	// ErrLearnerNotFound indicates that the learner does not exist.
	ErrLearnerNotFound = service.ErrLearnerNotFound

	// ErrWordNotFound indicates that the word does not exist.
	ErrWordNotFound = service.ErrWordNotFound
)

// ServiceError wraps errors from the review service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a new ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_review",
		Message:   message,
		Err:       err,
	}
}
