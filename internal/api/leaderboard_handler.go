package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/spellwise/vocab-api/internal/api/shared"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/service/leaderboard"
)

// ViewerHeader names the learner browsing a leaderboard. Their school and
// grade become the default scope.
const ViewerHeader = "X-Learner-Name"

// LeaderboardHandler serves point leaderboards.
type LeaderboardHandler struct {
	leaderboardService leaderboard.Service
	logger             *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService leaderboard.Service, logger *slog.Logger) *LeaderboardHandler {
	if leaderboardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("leaderboardService cannot be nil for LeaderboardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LeaderboardHandler")
	}

	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		logger:             logger.With(slog.String("component", "leaderboard_handler")),
	}
}

func scopeParams(r *http.Request) (school, grade string) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("school")), strings.TrimSpace(q.Get("grade"))
}

// GetLeaderboard handles GET /leaderboard?limit=&school=&grade=
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit, err := shared.QueryInt(r, "limit", leaderboard.DefaultLimit)
	if err != nil {
		log.Debug("invalid limit", slog.String("limit", r.URL.Query().Get("limit")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}

	school, grade := scopeParams(r)
	board, err := h.leaderboardService.Top(r.Context(), leaderboard.Query{
		Limit:  limit,
		School: school,
		Grade:  grade,
		Viewer: strings.TrimSpace(r.Header.Get(ViewerHeader)),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load leaderboard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, boardToResponse(board))
}

// GetStanding handles GET /learners/{name}/leaderboard?school=&grade=
func (h *LeaderboardHandler) GetStanding(w http.ResponseWriter, r *http.Request) {
	name, ok := learnerNameFromPath(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	school, grade := scopeParams(r)
	standing, err := h.leaderboardService.Standing(r.Context(), name, school, grade)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load standing")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, standingToResponse(standing))
}

// ListSchools handles GET /leaderboard/schools
func (h *LeaderboardHandler) ListSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := h.leaderboardService.Schools(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list schools")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, schools)
}

// ListGrades handles GET /leaderboard/grades?school=
func (h *LeaderboardHandler) ListGrades(w http.ResponseWriter, r *http.Request) {
	school, _ := scopeParams(r)
	grades, err := h.leaderboardService.Grades(r.Context(), school)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list grades")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, grades)
}
