package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/mocks"
	"github.com/spellwise/vocab-api/internal/service"
	"github.com/spellwise/vocab-api/internal/service/leaderboard"
	"github.com/spellwise/vocab-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaderboardHandlerPanics(t *testing.T) {
	assert.Panics(t, func() { NewLeaderboardHandler(nil, slog.Default()) })
	assert.Panics(t, func() { NewLeaderboardHandler(&mocks.MockLeaderboardService{}, nil) })
}

func TestGetLeaderboard(t *testing.T) {
	t.Run("scoped_board", func(t *testing.T) {
		svc := &mocks.MockLeaderboardService{
			TopFn: func(ctx context.Context, q leaderboard.Query) (*leaderboard.Board, error) {
				return &leaderboard.Board{
					Scope: store.LeaderboardScope{School: "Hillside"},
					Entries: []domain.LeaderboardEntry{
						{Rank: 1, Name: "mei", TotalPoints: 30, School: "HILLSIDE", Grade: "4B"},
						{Rank: 2, Name: "ana", TotalPoints: 12, School: "HILLSIDE"},
					},
				}, nil
			},
		}
		h := NewLeaderboardHandler(svc, slog.Default())

		req := newLearnerRequest(t, http.MethodGet, "/api/leaderboard?limit=5&school=+Hillside+", "", "")
		req.Header.Set(ViewerHeader, "ana")
		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Len(t, svc.TopCalls, 1)
		assert.Equal(t, leaderboard.Query{Limit: 5, School: "Hillside", Viewer: "ana"}, svc.TopCalls[0])

		body := decodeBody[LeaderboardResponse](t, rec)
		require.NotNil(t, body.Scope.School)
		assert.Equal(t, "Hillside", *body.Scope.School)
		assert.Nil(t, body.Scope.Grade)
		assert.Equal(t, 2, body.Count)
		require.Len(t, body.Items, 2)
		require.NotNil(t, body.Items[0].Rank)
		assert.Equal(t, 1, *body.Items[0].Rank)
		assert.Nil(t, body.Items[1].Grade)
	})

	t.Run("default_limit", func(t *testing.T) {
		svc := &mocks.MockLeaderboardService{}
		h := NewLeaderboardHandler(svc, slog.Default())

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newLearnerRequest(t, http.MethodGet, "/api/leaderboard", "", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, svc.TopCalls, 1)
		assert.Equal(t, leaderboard.DefaultLimit, svc.TopCalls[0].Limit)
		assert.Contains(t, rec.Body.String(), `"items":[]`)
	})

	t.Run("bad_limit", func(t *testing.T) {
		svc := &mocks.MockLeaderboardService{}
		h := NewLeaderboardHandler(svc, slog.Default())

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newLearnerRequest(t, http.MethodGet, "/api/leaderboard?limit=lots", "", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.TopCalls)
	})

	t.Run("service_failure", func(t *testing.T) {
		svc := &mocks.MockLeaderboardService{
			TopFn: func(ctx context.Context, q leaderboard.Query) (*leaderboard.Board, error) {
				return nil, service.NewServiceError("leaderboard", "top", errors.New("db down"))
			},
		}
		h := NewLeaderboardHandler(svc, slog.Default())

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newLearnerRequest(t, http.MethodGet, "/api/leaderboard", "", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestGetStanding(t *testing.T) {
	svc := &mocks.MockLeaderboardService{
		StandingFn: func(ctx context.Context, learnerName, school, grade string) (*leaderboard.Standing, error) {
			switch learnerName {
			case "ana":
				return &leaderboard.Standing{
					Scope: store.LeaderboardScope{School: school, Grade: "4B"},
					Entry: domain.LeaderboardEntry{Rank: 3, Name: "ana", TotalPoints: 12, School: "HILLSIDE", Grade: "4B"},
				}, nil
			case "mei":
				return &leaderboard.Standing{
					Scope: store.LeaderboardScope{School: school},
					Entry: domain.LeaderboardEntry{Name: "mei", TotalPoints: 30},
				}, nil
			}
			return nil, service.ErrLearnerNotFound
		},
	}
	h := NewLeaderboardHandler(svc, slog.Default())

	t.Run("ranked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetStanding(rec, newLearnerRequest(t, http.MethodGet,
			"/api/learners/ana/leaderboard?school=Hillside", "ana", ""))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody[StandingResponse](t, rec)
		require.NotNil(t, body.Rank)
		assert.Equal(t, 3, *body.Rank)
		assert.Equal(t, "ana", body.Name)
		require.NotNil(t, body.Scope.Grade)
		assert.Equal(t, "4B", *body.Scope.Grade)
	})

	t.Run("outside_scope", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetStanding(rec, newLearnerRequest(t, http.MethodGet,
			"/api/learners/mei/leaderboard?school=Riverbank", "mei", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"rank":null`)
		body := decodeBody[StandingResponse](t, rec)
		assert.Equal(t, 30, body.TotalPoints)
	})

	t.Run("unknown_learner", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetStanding(rec, newLearnerRequest(t, http.MethodGet, "/api/learners/ghost/leaderboard", "ghost", ""))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListSchoolsAndGrades(t *testing.T) {
	var gotSchool string
	svc := &mocks.MockLeaderboardService{
		SchoolsFn: func(ctx context.Context) ([]string, error) {
			return []string{"HILLSIDE", "RIVERBANK"}, nil
		},
		GradesFn: func(ctx context.Context, school string) ([]string, error) {
			gotSchool = school
			return []string{"4A", "4B"}, nil
		},
	}
	h := NewLeaderboardHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.ListSchools(rec, newLearnerRequest(t, http.MethodGet, "/api/leaderboard/schools", "", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"HILLSIDE", "RIVERBANK"}, decodeBody[[]string](t, rec))

	rec = httptest.NewRecorder()
	h.ListGrades(rec, newLearnerRequest(t, http.MethodGet, "/api/leaderboard/grades?school=hillside", "", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hillside", gotSchool)
	assert.Equal(t, []string{"4A", "4B"}, decodeBody[[]string](t, rec))
}
