package mocks

import (
	"context"
	"sync"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/service/deck"
	"github.com/spellwise/vocab-api/internal/service/leaderboard"
	"github.com/spellwise/vocab-api/internal/service/review"
	"github.com/spellwise/vocab-api/internal/service/reward"
)

// MockDeckService is a function-field mock of deck.Service.
type MockDeckService struct {
	BuildDeckFn func(ctx context.Context, req deck.Request) (*deck.Deck, error)

	mu    sync.Mutex
	Calls []deck.Request
}

var _ deck.Service = (*MockDeckService)(nil)

// BuildDeck implements deck.Service.
func (m *MockDeckService) BuildDeck(ctx context.Context, req deck.Request) (*deck.Deck, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.BuildDeckFn != nil {
		return m.BuildDeckFn(ctx, req)
	}
	return &deck.Deck{Cards: []deck.Card{}}, nil
}

// MockReviewService is a function-field mock of review.Service.
type MockReviewService struct {
	SubmitReviewFn func(ctx context.Context, sub review.Submission) (*review.Result, error)

	mu    sync.Mutex
	Calls []review.Submission
}

var _ review.Service = (*MockReviewService)(nil)

// SubmitReview implements review.Service.
func (m *MockReviewService) SubmitReview(ctx context.Context, sub review.Submission) (*review.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, sub)
	m.mu.Unlock()

	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, sub)
	}
	return nil, review.NewSubmitReviewError("no behaviour configured", nil)
}

// MockRewardService is a function-field mock of reward.Service. Unset
// functions return zero values.
type MockRewardService struct {
	SummaryFn      func(ctx context.Context, learnerName string) (*reward.Summary, error)
	HistoryPageFn  func(ctx context.Context, learnerName string, page int) (*reward.Page, error)
	EarnFn         func(ctx context.Context, learnerName string, points int, reason string) (int, error)
	RedeemFn       func(ctx context.Context, learnerName string, points int, item string) (int, error)
	StudyHistoryFn func(ctx context.Context, learnerName string, limit int) ([]*domain.StudyHistory, error)
}

var _ reward.Service = (*MockRewardService)(nil)

// Summary implements reward.Service.
func (m *MockRewardService) Summary(ctx context.Context, learnerName string) (*reward.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, learnerName)
	}
	return &reward.Summary{}, nil
}

// HistoryPage implements reward.Service.
func (m *MockRewardService) HistoryPage(ctx context.Context, learnerName string, page int) (*reward.Page, error) {
	if m.HistoryPageFn != nil {
		return m.HistoryPageFn(ctx, learnerName, page)
	}
	return &reward.Page{Page: page, Size: reward.PageSize}, nil
}

// Earn implements reward.Service.
func (m *MockRewardService) Earn(ctx context.Context, learnerName string, points int, reason string) (int, error) {
	if m.EarnFn != nil {
		return m.EarnFn(ctx, learnerName, points, reason)
	}
	return 0, nil
}

// Redeem implements reward.Service.
func (m *MockRewardService) Redeem(ctx context.Context, learnerName string, points int, item string) (int, error) {
	if m.RedeemFn != nil {
		return m.RedeemFn(ctx, learnerName, points, item)
	}
	return 0, nil
}

// StudyHistory implements reward.Service.
func (m *MockRewardService) StudyHistory(
	ctx context.Context,
	learnerName string,
	limit int,
) ([]*domain.StudyHistory, error) {
	if m.StudyHistoryFn != nil {
		return m.StudyHistoryFn(ctx, learnerName, limit)
	}
	return []*domain.StudyHistory{}, nil
}

// MockLeaderboardService is a function-field mock of leaderboard.Service.
// Unset functions return empty results.
type MockLeaderboardService struct {
	TopFn      func(ctx context.Context, q leaderboard.Query) (*leaderboard.Board, error)
	StandingFn func(ctx context.Context, learnerName, school, grade string) (*leaderboard.Standing, error)
	SchoolsFn  func(ctx context.Context) ([]string, error)
	GradesFn   func(ctx context.Context, school string) ([]string, error)

	mu       sync.Mutex
	TopCalls []leaderboard.Query
}

var _ leaderboard.Service = (*MockLeaderboardService)(nil)

// Top implements leaderboard.Service.
func (m *MockLeaderboardService) Top(ctx context.Context, q leaderboard.Query) (*leaderboard.Board, error) {
	m.mu.Lock()
	m.TopCalls = append(m.TopCalls, q)
	m.mu.Unlock()

	if m.TopFn != nil {
		return m.TopFn(ctx, q)
	}
	return &leaderboard.Board{Entries: []domain.LeaderboardEntry{}}, nil
}

// Standing implements leaderboard.Service.
func (m *MockLeaderboardService) Standing(
	ctx context.Context,
	learnerName, school, grade string,
) (*leaderboard.Standing, error) {
	if m.StandingFn != nil {
		return m.StandingFn(ctx, learnerName, school, grade)
	}
	return &leaderboard.Standing{Entry: domain.LeaderboardEntry{Name: learnerName}}, nil
}

// Schools implements leaderboard.Service.
func (m *MockLeaderboardService) Schools(ctx context.Context) ([]string, error) {
	if m.SchoolsFn != nil {
		return m.SchoolsFn(ctx)
	}
	return []string{}, nil
}

// Grades implements leaderboard.Service.
func (m *MockLeaderboardService) Grades(ctx context.Context, school string) ([]string, error) {
	if m.GradesFn != nil {
		return m.GradesFn(ctx, school)
	}
	return []string{}, nil
}
