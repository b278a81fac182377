package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spellwise/vocab-api/internal/api"
	apiMiddleware "github.com/spellwise/vocab-api/internal/api/middleware"
)

const requestTimeout = 15 * time.Second

// learnerKey charges rate limits to the learner named in the path.
func learnerKey(r *http.Request) string {
	return chi.URLParam(r, api.LearnerParam)
}

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	rewardHandler := api.NewRewardHandler(app.rewardService, app.logger)
	boardHandler := api.NewLeaderboardHandler(app.boardService, app.logger)

	r.Route("/api/learners/{"+api.LearnerParam+"}", func(r chi.Router) {
		r.Get("/deck", deckHandler.GetDeck)
		r.With(app.reviewLimiter.Middleware).Post("/reviews", reviewHandler.SubmitReview)

		r.Get("/points", rewardHandler.GetPoints)
		r.Get("/points/history", rewardHandler.GetPointsHistory)
		r.Post("/points/redeem", rewardHandler.RedeemPoints)
		r.Post("/points/earn", rewardHandler.EarnPoints)

		r.Get("/history", rewardHandler.GetStudyHistory)
		r.Get("/leaderboard", boardHandler.GetStanding)
	})

	r.Route("/api/leaderboard", func(r chi.Router) {
		r.Get("/", boardHandler.GetLeaderboard)
		r.Get("/schools", boardHandler.ListSchools)
		r.Get("/grades", boardHandler.ListGrades)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response")
		}
	})

	return r
}
