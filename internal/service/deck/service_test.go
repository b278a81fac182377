package deck_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/domain/srs"
	"github.com/spellwise/vocab-api/internal/mocks"
	"github.com/spellwise/vocab-api/internal/service/deck"
	"github.com/spellwise/vocab-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type deckFixture struct {
	learners *mocks.TestifyMockLearnerStore
	words    *mocks.TestifyMockWordStore
	states   *mocks.TestifyMockReviewStateStore
	svc      deck.Service
	today    time.Time
}

func newDeckFixture(t *testing.T) *deckFixture {
	t.Helper()

	sg, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	// 20:30 UTC on June 14 is already June 15 in Singapore.
	clock := srs.FixedClock{T: time.Date(2024, 6, 14, 20, 30, 0, 0, time.UTC), Loc: sg}

	f := &deckFixture{
		learners: &mocks.TestifyMockLearnerStore{},
		words:    &mocks.TestifyMockWordStore{},
		states:   &mocks.TestifyMockReviewStateStore{},
		today:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	f.svc = deck.NewService(f.learners, f.words, f.states, clock, deck.Config{DefaultLimit: 10, MaxLimit: 3}, nil)

	t.Cleanup(func() {
		f.learners.AssertExpectations(t)
		f.words.AssertExpectations(t)
		f.states.AssertExpectations(t)
	})
	return f
}

func pool(ids ...int64) []domain.Word {
	out := make([]domain.Word, len(ids))
	for i, id := range ids {
		out[i] = domain.Word{ID: id, Text: "word", Language: "en"}
	}
	return out
}

func TestBuildDeck_UnknownLearner(t *testing.T) {
	f := newDeckFixture(t)
	f.learners.On("GetByName", mock.Anything, "ghost").Return(nil, store.ErrLearnerNotFound)

	d, err := f.svc.BuildDeck(context.Background(), deck.Request{LearnerName: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, d.Cards)
	assert.Equal(t, deck.EmptyReasonNoTags, d.EmptyReason)
	assert.Equal(t, f.today, d.Date)
}

func TestBuildDeck_EmptyPool(t *testing.T) {
	f := newDeckFixture(t)
	f.learners.On("GetByName", mock.Anything, "ana").Return(&domain.Learner{ID: 1, Name: "ana"}, nil)
	f.words.On("PoolForLearner", mock.Anything, int64(1), []string(nil)).Return([]domain.Word{}, nil)

	d, err := f.svc.BuildDeck(context.Background(), deck.Request{LearnerName: "ana"})
	require.NoError(t, err)
	assert.Empty(t, d.Cards)
	assert.Equal(t, deck.EmptyReasonNoWords, d.EmptyReason)
}

func TestBuildDeck_NewLearnerGetsAllNewCards(t *testing.T) {
	f := newDeckFixture(t)
	f.learners.On("GetByName", mock.Anything, "ana").Return(&domain.Learner{ID: 1, Name: "ana"}, nil)
	f.words.On("PoolForLearner", mock.Anything, int64(1), []string{"fruit"}).Return(pool(1, 2, 3), nil)
	f.states.On("ListForLearner", mock.Anything, int64(1), []int64{1, 2, 3}).
		Return(map[int64]*domain.ReviewState{}, nil)

	d, err := f.svc.BuildDeck(context.Background(), deck.Request{LearnerName: "ana", Tags: []string{"fruit"}})
	require.NoError(t, err)
	require.Len(t, d.Cards, 3)
	assert.Equal(t, deck.EmptyReasonNone, d.EmptyReason)
	for _, c := range d.Cards {
		assert.Equal(t, domain.ReviewStatusNew, c.State.Status)
		assert.Equal(t, f.today, c.State.DueDate, "today follows the clock's timezone")
	}
}

func TestBuildDeck_OverdueWithLimitOne(t *testing.T) {
	f := newDeckFixture(t)
	yesterday := f.today.AddDate(0, 0, -1)
	twoDaysAgo := f.today.AddDate(0, 0, -2)

	f.learners.On("GetByName", mock.Anything, "ana").Return(&domain.Learner{ID: 1, Name: "ana"}, nil)
	f.words.On("PoolForLearner", mock.Anything, int64(1), []string(nil)).Return(pool(1, 2, 3, 4, 5), nil)
	f.states.On("ListForLearner", mock.Anything, int64(1), []int64{1, 2, 3, 4, 5}).
		Return(map[int64]*domain.ReviewState{
			2: {LearnerID: 1, WordID: 2, EaseFactor: 2.5, DueDate: yesterday, Status: domain.ReviewStatusReview},
			4: {LearnerID: 1, WordID: 4, EaseFactor: 2.5, DueDate: twoDaysAgo, Status: domain.ReviewStatusReview},
		}, nil)

	d, err := f.svc.BuildDeck(context.Background(), deck.Request{LearnerName: "ana", Limit: 1})
	require.NoError(t, err)
	require.Len(t, d.Cards, 1)
	assert.Equal(t, int64(4), d.Cards[0].Word.ID)
	assert.False(t, d.Cards[0].IsNew)
}

func TestBuildDeck_LimitIsCapped(t *testing.T) {
	f := newDeckFixture(t)
	f.learners.On("GetByName", mock.Anything, "ana").Return(&domain.Learner{ID: 1, Name: "ana"}, nil)
	f.words.On("PoolForLearner", mock.Anything, int64(1), []string(nil)).Return(pool(1, 2, 3, 4, 5), nil)
	f.states.On("ListForLearner", mock.Anything, int64(1), mock.Anything).
		Return(map[int64]*domain.ReviewState{}, nil)

	d, err := f.svc.BuildDeck(context.Background(), deck.Request{LearnerName: "ana", Limit: 50})
	require.NoError(t, err)
	assert.Len(t, d.Cards, 3)
}

func TestBuildDeck_StoreFailure(t *testing.T) {
	f := newDeckFixture(t)
	boom := errors.New("connection reset")
	f.learners.On("GetByName", mock.Anything, "ana").Return(&domain.Learner{ID: 1, Name: "ana"}, nil)
	f.words.On("PoolForLearner", mock.Anything, int64(1), []string(nil)).Return(nil, boom)

	_, err := f.svc.BuildDeck(context.Background(), deck.Request{LearnerName: "ana"})
	assert.ErrorIs(t, err, boom)
}
