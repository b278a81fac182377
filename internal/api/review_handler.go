package api

import (
	"log/slog"
	"net/http"

	"github.com/spellwise/vocab-api/internal/api/shared"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/service/review"
)

// ReviewHandler records answered cards.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /learners/{name}/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name, ok := learnerNameFromPath(w, r, log)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid review body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), review.Submission{
		LearnerName: name,
		WordID:      req.WordID,
		Quality:     *req.Quality,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}

	log.Debug("review submitted",
		slog.String("learner", name),
		slog.Int64("word_id", req.WordID),
		slog.Int("total_points", result.TotalPoints))

	shared.RespondWithJSON(w, r, http.StatusOK, SubmitReviewResponse{
		UpdatedState:  reviewStateToResponse(result.UpdatedState),
		PointsAwarded: result.PointsAwarded,
		TotalPoints:   result.TotalPoints,
	})
}
