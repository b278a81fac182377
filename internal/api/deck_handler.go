package api

import (
	"log/slog"
	"net/http"

	"github.com/spellwise/vocab-api/internal/api/shared"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/service/deck"
)

// DeckHandler serves study decks.
type DeckHandler struct {
	deckService deck.Service
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(deckService deck.Service, logger *slog.Logger) *DeckHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckService cannot be nil for DeckHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// GetDeck handles GET /learners/{name}/deck?limit=&tag=
//
// An unknown learner is not an error here: the deck comes back empty with
// empty_reason "no_tags", same as a learner without tags.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name, ok := learnerNameFromPath(w, r, log)
	if !ok {
		return
	}

	limit, err := shared.QueryInt(r, "limit", 0)
	if err != nil {
		log.Debug("invalid limit", slog.String("limit", r.URL.Query().Get("limit")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}

	d, err := h.deckService.BuildDeck(r.Context(), deck.Request{
		LearnerName: name,
		Limit:       limit,
		Tags:        shared.QueryList(r, "tag"),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(d))
}
