package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
)

// LearnerParam is the chi path parameter naming the learner.
const LearnerParam = "name"

// learnerNameFromPath extracts the learner name from the URL path, writing a
// 400 response and returning false when it is missing.
func learnerNameFromPath(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	name := strings.TrimSpace(chi.URLParam(r, LearnerParam))
	if name == "" {
		log.Warn("learner name missing from path")
		HandleAPIError(w, r, domain.NewValidationError("name", "is required", domain.ErrValidation), "")
		return "", false
	}
	return name, true
}
