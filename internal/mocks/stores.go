package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// The testify store mocks return themselves from WithTx, so expectations set
// before a transaction starts also apply to the transactional copies.

// TestifyMockLearnerStore is a mock of store.LearnerStore interface for use with testify/mock
type TestifyMockLearnerStore struct {
	mock.Mock
}

var _ store.LearnerStore = (*TestifyMockLearnerStore)(nil)

// Create is a mock implementation of store.LearnerStore.Create
func (m *TestifyMockLearnerStore) Create(ctx context.Context, learner *domain.Learner) error {
	args := m.Called(ctx, learner)
	return args.Error(0)
}

// GetByID is a mock implementation of store.LearnerStore.GetByID
func (m *TestifyMockLearnerStore) GetByID(ctx context.Context, id int64) (*domain.Learner, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*domain.Learner); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByName is a mock implementation of store.LearnerStore.GetByName
func (m *TestifyMockLearnerStore) GetByName(ctx context.Context, name string) (*domain.Learner, error) {
	args := m.Called(ctx, name)
	if l, ok := args.Get(0).(*domain.Learner); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByNameForUpdate is a mock implementation of store.LearnerStore.GetByNameForUpdate
func (m *TestifyMockLearnerStore) GetByNameForUpdate(ctx context.Context, name string) (*domain.Learner, error) {
	args := m.Called(ctx, name)
	if l, ok := args.Get(0).(*domain.Learner); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

// AddPoints is a mock implementation of store.LearnerStore.AddPoints
func (m *TestifyMockLearnerStore) AddPoints(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

// Leaderboard is a mock implementation of store.LearnerStore.Leaderboard
func (m *TestifyMockLearnerStore) Leaderboard(
	ctx context.Context,
	scope store.LeaderboardScope,
	limit int,
) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, scope, limit)
	if entries, ok := args.Get(0).([]domain.LeaderboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// Standing is a mock implementation of store.LearnerStore.Standing
func (m *TestifyMockLearnerStore) Standing(
	ctx context.Context,
	name string,
	scope store.LeaderboardScope,
) (*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, name, scope)
	if e, ok := args.Get(0).(*domain.LeaderboardEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// Schools is a mock implementation of store.LearnerStore.Schools
func (m *TestifyMockLearnerStore) Schools(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Grades is a mock implementation of store.LearnerStore.Grades
func (m *TestifyMockLearnerStore) Grades(ctx context.Context, school string) ([]string, error) {
	args := m.Called(ctx, school)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.LearnerStore.WithTx
func (m *TestifyMockLearnerStore) WithTx(*sql.Tx) store.LearnerStore {
	return m
}

// TestifyMockWordStore is a mock of store.WordStore interface for use with testify/mock
type TestifyMockWordStore struct {
	mock.Mock
}

var _ store.WordStore = (*TestifyMockWordStore)(nil)

// GetByID is a mock implementation of store.WordStore.GetByID
func (m *TestifyMockWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	args := m.Called(ctx, id)
	if w, ok := args.Get(0).(*domain.Word); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

// PoolForLearner is a mock implementation of store.WordStore.PoolForLearner
func (m *TestifyMockWordStore) PoolForLearner(
	ctx context.Context,
	learnerID int64,
	tags []string,
) ([]domain.Word, error) {
	args := m.Called(ctx, learnerID, tags)
	if words, ok := args.Get(0).([]domain.Word); ok {
		return words, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.WordStore.WithTx
func (m *TestifyMockWordStore) WithTx(*sql.Tx) store.WordStore {
	return m
}

// TestifyMockReviewStateStore is a mock of store.ReviewStateStore interface for use with testify/mock
type TestifyMockReviewStateStore struct {
	mock.Mock
}

var _ store.ReviewStateStore = (*TestifyMockReviewStateStore)(nil)

// Get is a mock implementation of store.ReviewStateStore.Get
func (m *TestifyMockReviewStateStore) Get(ctx context.Context, learnerID, wordID int64) (*domain.ReviewState, error) {
	args := m.Called(ctx, learnerID, wordID)
	if s, ok := args.Get(0).(*domain.ReviewState); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetForUpdate is a mock implementation of store.ReviewStateStore.GetForUpdate
func (m *TestifyMockReviewStateStore) GetForUpdate(
	ctx context.Context,
	learnerID, wordID int64,
) (*domain.ReviewState, error) {
	args := m.Called(ctx, learnerID, wordID)
	if s, ok := args.Get(0).(*domain.ReviewState); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListForLearner is a mock implementation of store.ReviewStateStore.ListForLearner
func (m *TestifyMockReviewStateStore) ListForLearner(
	ctx context.Context,
	learnerID int64,
	wordIDs []int64,
) (map[int64]*domain.ReviewState, error) {
	args := m.Called(ctx, learnerID, wordIDs)
	if states, ok := args.Get(0).(map[int64]*domain.ReviewState); ok {
		return states, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.ReviewStateStore.Upsert
func (m *TestifyMockReviewStateStore) Upsert(ctx context.Context, state *domain.ReviewState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// WithTx is a mock implementation of store.ReviewStateStore.WithTx
func (m *TestifyMockReviewStateStore) WithTx(*sql.Tx) store.ReviewStateStore {
	return m
}

// TestifyMockStudyHistoryStore is a mock of store.StudyHistoryStore interface for use with testify/mock
type TestifyMockStudyHistoryStore struct {
	mock.Mock
}

var _ store.StudyHistoryStore = (*TestifyMockStudyHistoryStore)(nil)

// Increment is a mock implementation of store.StudyHistoryStore.Increment
func (m *TestifyMockStudyHistoryStore) Increment(
	ctx context.Context,
	learnerID, wordID int64,
	at time.Time,
) (*domain.StudyHistory, error) {
	args := m.Called(ctx, learnerID, wordID, at)
	if h, ok := args.Get(0).(*domain.StudyHistory); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListForLearner is a mock implementation of store.StudyHistoryStore.ListForLearner
func (m *TestifyMockStudyHistoryStore) ListForLearner(
	ctx context.Context,
	learnerID int64,
	limit int,
) ([]*domain.StudyHistory, error) {
	args := m.Called(ctx, learnerID, limit)
	if rows, ok := args.Get(0).([]*domain.StudyHistory); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.StudyHistoryStore.WithTx
func (m *TestifyMockStudyHistoryStore) WithTx(*sql.Tx) store.StudyHistoryStore {
	return m
}

// TestifyMockRewardStore is a mock of store.RewardStore interface for use with testify/mock
type TestifyMockRewardStore struct {
	mock.Mock
}

var _ store.RewardStore = (*TestifyMockRewardStore)(nil)

// Append is a mock implementation of store.RewardStore.Append
func (m *TestifyMockRewardStore) Append(ctx context.Context, entry *domain.RewardEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ListForLearner is a mock implementation of store.RewardStore.ListForLearner
func (m *TestifyMockRewardStore) ListForLearner(
	ctx context.Context,
	learnerID int64,
	limit, offset int,
) ([]*domain.RewardEntry, error) {
	args := m.Called(ctx, learnerID, limit, offset)
	if entries, ok := args.Get(0).([]*domain.RewardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// CountForLearner is a mock implementation of store.RewardStore.CountForLearner
func (m *TestifyMockRewardStore) CountForLearner(ctx context.Context, learnerID int64) (int, error) {
	args := m.Called(ctx, learnerID)
	return args.Int(0), args.Error(1)
}

// WithTx is a mock implementation of store.RewardStore.WithTx
func (m *TestifyMockRewardStore) WithTx(*sql.Tx) store.RewardStore {
	return m
}
