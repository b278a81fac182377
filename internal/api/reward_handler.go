package api

import (
	"log/slog"
	"net/http"

	"github.com/spellwise/vocab-api/internal/api/shared"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/service/reward"
)

// RewardHandler serves points and study history.
type RewardHandler struct {
	rewardService reward.Service
	logger        *slog.Logger
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(rewardService reward.Service, logger *slog.Logger) *RewardHandler {
	if rewardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rewardService cannot be nil for RewardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RewardHandler")
	}

	return &RewardHandler{
		rewardService: rewardService,
		logger:        logger.With(slog.String("component", "reward_handler")),
	}
}

// GetPoints handles GET /learners/{name}/points
func (h *RewardHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	name, ok := learnerNameFromPath(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	summary, err := h.rewardService.Summary(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load points")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// GetPointsHistory handles GET /learners/{name}/points/history?page=N
func (h *RewardHandler) GetPointsHistory(w http.ResponseWriter, r *http.Request) {
	name, ok := learnerNameFromPath(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	page, err := shared.QueryInt(r, "page", 1)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid page")
		return
	}

	result, err := h.rewardService.HistoryPage(r.Context(), name, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load points history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// RedeemPoints handles POST /learners/{name}/points/redeem
func (h *RewardHandler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	h.changePoints(w, r, "redeem", func(name string, req PointsRequest) (int, error) {
		return h.rewardService.Redeem(r.Context(), name, req.Points, req.Item)
	})
}

// EarnPoints handles POST /learners/{name}/points/earn
func (h *RewardHandler) EarnPoints(w http.ResponseWriter, r *http.Request) {
	h.changePoints(w, r, "earn", func(name string, req PointsRequest) (int, error) {
		return h.rewardService.Earn(r.Context(), name, req.Points, req.Reason)
	})
}

func (h *RewardHandler) changePoints(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	apply func(name string, req PointsRequest) (int, error),
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name, ok := learnerNameFromPath(w, r, log)
	if !ok {
		return
	}

	var req PointsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid points body", slog.String("operation", op), slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	total, err := apply(name, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update points")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{TotalPoints: total})
}

// GetStudyHistory handles GET /learners/{name}/history?limit=N
func (h *RewardHandler) GetStudyHistory(w http.ResponseWriter, r *http.Request) {
	name, ok := learnerNameFromPath(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	limit, err := shared.QueryInt(r, "limit", reward.DefaultHistoryLimit)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}

	rows, err := h.rewardService.StudyHistory(r.Context(), name, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load study history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, studyHistoryToResponse(rows))
}
