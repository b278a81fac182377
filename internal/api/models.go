package api

import (
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/service/deck"
	"github.com/spellwise/vocab-api/internal/service/leaderboard"
	"github.com/spellwise/vocab-api/internal/service/reward"
)

// dateLayout renders calendar dates as ISO-8601 days.
const dateLayout = "2006-01-02"

// SubmitReviewRequest is the body of POST /learners/{name}/reviews.
// Quality is a pointer so a missing field can be told apart from 0.
type SubmitReviewRequest struct {
	WordID  int64 `json:"word_id" validate:"required,gt=0"`
	Quality *int  `json:"quality" validate:"required"`
}

// PointsRequest is the body of the redeem and earn endpoints.
type PointsRequest struct {
	Points int    `json:"points" validate:"required,gt=0"`
	Item   string `json:"item"   validate:"omitempty,max=200"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// ReviewStateResponse is the wire form of a review state.
type ReviewStateResponse struct {
	WordID         int64      `json:"word_id"`
	Repetitions    int        `json:"repetitions"`
	IntervalDays   int        `json:"interval_days"`
	EaseFactor     float64    `json:"ease_factor"`
	DueDate        *string    `json:"due_date"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	Status         string     `json:"status"`
}

// CardResponse is one card of a deck.
type CardResponse struct {
	WordID   int64               `json:"word_id"`
	Text     string              `json:"text"`
	Language string              `json:"language"`
	IsNew    bool                `json:"is_new"`
	State    ReviewStateResponse `json:"state"`
}

// DeckResponse is the body of GET /learners/{name}/deck.
type DeckResponse struct {
	Date        string         `json:"date"`
	Cards       []CardResponse `json:"cards"`
	EmptyReason string         `json:"empty_reason"`
}

// SubmitReviewResponse is the body returned after a review.
type SubmitReviewResponse struct {
	UpdatedState  ReviewStateResponse `json:"updated_state"`
	PointsAwarded int                 `json:"points_awarded"`
	TotalPoints   int                 `json:"total_points"`
}

// RewardEntryResponse is one ledger line.
type RewardEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PointsSummaryResponse is the body of GET /learners/{name}/points.
type PointsSummaryResponse struct {
	TotalPoints    int                   `json:"total_points"`
	HistoryPreview []RewardEntryResponse `json:"history_preview"`
}

// RewardPageResponse is the body of GET /learners/{name}/points/history.
type RewardPageResponse struct {
	Page  int                   `json:"page"`
	Size  int                   `json:"size"`
	Total int                   `json:"total"`
	Items []RewardEntryResponse `json:"items"`
}

// BalanceResponse is returned by redeem and earn.
type BalanceResponse struct {
	TotalPoints int `json:"total_points"`
}

// StudyHistoryResponse is one row of GET /learners/{name}/history.
type StudyHistoryResponse struct {
	WordID        int64      `json:"word_id"`
	Count         int        `json:"count"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
}

// LeaderboardScopeResponse echoes the filters a board was ranked over.
// Unset filters are null.
type LeaderboardScopeResponse struct {
	School *string `json:"school"`
	Grade  *string `json:"grade"`
}

// LeaderboardEntryResponse is one learner on a board. Rank is null when the
// learner is outside the board's scope.
type LeaderboardEntryResponse struct {
	Rank        *int    `json:"rank"`
	Name        string  `json:"name"`
	TotalPoints int     `json:"total_points"`
	School      *string `json:"school"`
	Grade       *string `json:"grade"`
}

// LeaderboardResponse is the body of GET /leaderboard.
type LeaderboardResponse struct {
	Scope LeaderboardScopeResponse   `json:"scope"`
	Count int                        `json:"count"`
	Items []LeaderboardEntryResponse `json:"items"`
}

// StandingResponse is the body of GET /learners/{name}/leaderboard.
type StandingResponse struct {
	LeaderboardEntryResponse
	Scope LeaderboardScopeResponse `json:"scope"`
}

func reviewStateToResponse(s *domain.ReviewState) ReviewStateResponse {
	resp := ReviewStateResponse{
		WordID:       s.WordID,
		Repetitions:  s.Repetitions,
		IntervalDays: s.IntervalDays,
		EaseFactor:   s.EaseFactor,
		Status:       string(s.Status),
	}
	if !s.DueDate.IsZero() {
		d := s.DueDate.Format(dateLayout)
		resp.DueDate = &d
	}
	if !s.LastReviewedAt.IsZero() {
		t := s.LastReviewedAt.UTC()
		resp.LastReviewedAt = &t
	}
	return resp
}

func deckToResponse(d *deck.Deck) DeckResponse {
	resp := DeckResponse{
		Date:        d.Date.Format(dateLayout),
		Cards:       make([]CardResponse, 0, len(d.Cards)),
		EmptyReason: string(d.EmptyReason),
	}
	for _, c := range d.Cards {
		resp.Cards = append(resp.Cards, CardResponse{
			WordID:   c.Word.ID,
			Text:     c.Word.Text,
			Language: c.Word.Language,
			IsNew:    c.IsNew,
			State:    reviewStateToResponse(c.State),
		})
	}
	return resp
}

func rewardEntriesToResponse(entries []*domain.RewardEntry) []RewardEntryResponse {
	out := make([]RewardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, RewardEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			Points:    e.Points,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}
	return out
}

func summaryToResponse(s *reward.Summary) PointsSummaryResponse {
	return PointsSummaryResponse{
		TotalPoints:    s.TotalPoints,
		HistoryPreview: rewardEntriesToResponse(s.Preview),
	}
}

func pageToResponse(p *reward.Page) RewardPageResponse {
	return RewardPageResponse{
		Page:  p.Page,
		Size:  p.Size,
		Total: p.Total,
		Items: rewardEntriesToResponse(p.Items),
	}
}

func studyHistoryToResponse(rows []*domain.StudyHistory) []StudyHistoryResponse {
	out := make([]StudyHistoryResponse, 0, len(rows))
	for _, h := range rows {
		row := StudyHistoryResponse{WordID: h.WordID, Count: h.Count}
		if !h.LastStudiedAt.IsZero() {
			t := h.LastStudiedAt.UTC()
			row.LastStudiedAt = &t
		}
		out = append(out, row)
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func leaderboardEntryToResponse(e domain.LeaderboardEntry) LeaderboardEntryResponse {
	resp := LeaderboardEntryResponse{
		Name:        e.Name,
		TotalPoints: e.TotalPoints,
		School:      optionalString(e.School),
		Grade:       optionalString(e.Grade),
	}
	if e.Ranked() {
		rank := e.Rank
		resp.Rank = &rank
	}
	return resp
}

func boardToResponse(b *leaderboard.Board) LeaderboardResponse {
	resp := LeaderboardResponse{
		Scope: LeaderboardScopeResponse{
			School: optionalString(b.Scope.School),
			Grade:  optionalString(b.Scope.Grade),
		},
		Count: len(b.Entries),
		Items: make([]LeaderboardEntryResponse, 0, len(b.Entries)),
	}
	for _, e := range b.Entries {
		resp.Items = append(resp.Items, leaderboardEntryToResponse(e))
	}
	return resp
}

func standingToResponse(s *leaderboard.Standing) StandingResponse {
	return StandingResponse{
		LeaderboardEntryResponse: leaderboardEntryToResponse(s.Entry),
		Scope: LeaderboardScopeResponse{
			School: optionalString(s.Scope.School),
			Grade:  optionalString(s.Scope.Grade),
		},
	}
}
