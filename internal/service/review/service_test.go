package review_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/domain/srs"
	"github.com/spellwise/vocab-api/internal/mocks"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/service/review"
	"github.com/spellwise/vocab-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	reviewNow   = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	reviewToday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
)

type reviewFixture struct {
	dbMock   sqlmock.Sqlmock
	learners *mocks.TestifyMockLearnerStore
	words    *mocks.TestifyMockWordStore
	states   *mocks.TestifyMockReviewStateStore
	history  *mocks.TestifyMockStudyHistoryStore
	rewards  *mocks.TestifyMockRewardStore
	logs     *logger.TestLogBuffer
	svc      review.Service
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)

	log, logs := logger.GetTestLogger(t)

	f := &reviewFixture{
		dbMock:   dbMock,
		learners: &mocks.TestifyMockLearnerStore{},
		words:    &mocks.TestifyMockWordStore{},
		states:   &mocks.TestifyMockReviewStateStore{},
		history:  &mocks.TestifyMockStudyHistoryStore{},
		rewards:  &mocks.TestifyMockRewardStore{},
		logs:     logs,
	}
	f.svc = review.NewReviewService(db, review.Stores{
		Learners: f.learners,
		Words:    f.words,
		States:   f.states,
		History:  f.history,
		Rewards:  f.rewards,
	}, srs.NewDefaultService(), srs.FixedClock{T: reviewNow}, log)

	t.Cleanup(func() {
		assert.NoError(t, dbMock.ExpectationsWereMet())
		f.learners.AssertExpectations(t)
		f.words.AssertExpectations(t)
		f.states.AssertExpectations(t)
		f.history.AssertExpectations(t)
		f.rewards.AssertExpectations(t)
		_ = db.Close()
	})
	return f
}

func (f *reviewFixture) expectLearnerAndWord(learner *domain.Learner, wordID int64) {
	f.learners.On("GetByNameForUpdate", mock.Anything, learner.Name).Return(learner, nil)
	f.words.On("GetByID", mock.Anything, wordID).Return(&domain.Word{ID: wordID, Text: "gato"}, nil)
}

func (f *reviewFixture) expectWrites(learnerID, wordID int64, newTotal int) {
	f.states.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.ReviewState")).Return(nil)
	f.history.On("Increment", mock.Anything, learnerID, wordID, reviewNow).
		Return(&domain.StudyHistory{LearnerID: learnerID, WordID: wordID, Count: 1}, nil)
	f.learners.On("AddPoints", mock.Anything, learnerID, review.PointsPerReview).Return(newTotal, nil)
	f.rewards.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.RewardEntry) bool {
		return e.LearnerID == learnerID &&
			e.Action == domain.RewardActionEarn &&
			e.Points == 1 &&
			e.Reason == domain.RewardReasonStudy
	})).Return(nil)
}

func TestSubmitReview_FirstReviewCreatesState(t *testing.T) {
	f := newReviewFixture(t)
	learner := &domain.Learner{ID: 1, Name: "ana", TotalPoints: 4}

	f.dbMock.ExpectBegin()
	f.expectLearnerAndWord(learner, 42)
	f.states.On("GetForUpdate", mock.Anything, int64(1), int64(42)).Return(nil, store.ErrReviewStateNotFound)
	f.expectWrites(1, 42, 5)
	f.dbMock.ExpectCommit()

	res, err := f.svc.SubmitReview(context.Background(), review.Submission{
		LearnerName: "ana", WordID: 42, Quality: int(domain.QualityGood),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.PointsAwarded)
	assert.Equal(t, 5, res.TotalPoints)
	assert.Equal(t, 1, res.UpdatedState.Repetitions)
	assert.Equal(t, 1, res.UpdatedState.IntervalDays)
	assert.Equal(t, reviewToday.AddDate(0, 0, 1), res.UpdatedState.DueDate)
	assert.Equal(t, reviewNow, res.UpdatedState.LastReviewedAt)
	assert.Equal(t, domain.ReviewStatusReview, res.UpdatedState.Status)
}

func TestSubmitReview_FailureResetsStreak(t *testing.T) {
	f := newReviewFixture(t)
	learner := &domain.Learner{ID: 1, Name: "ana"}

	existing := domain.NewReviewState(1, 42)
	existing.Repetitions = 4
	existing.IntervalDays = 20
	existing.EaseFactor = 2.0
	existing.Status = domain.ReviewStatusReview

	f.dbMock.ExpectBegin()
	f.expectLearnerAndWord(learner, 42)
	f.states.On("GetForUpdate", mock.Anything, int64(1), int64(42)).Return(existing, nil)
	f.expectWrites(1, 42, 1)
	f.dbMock.ExpectCommit()

	res, err := f.svc.SubmitReview(context.Background(), review.Submission{
		LearnerName: "ana", WordID: 42, Quality: int(domain.QualityAgain),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.UpdatedState.Repetitions)
	assert.Equal(t, 1, res.UpdatedState.IntervalDays)
	assert.InDelta(t, domain.MinEaseFactor, res.UpdatedState.EaseFactor, 1e-9)
	assert.Equal(t, 1, res.PointsAwarded, "failed reviews are rewarded too")
}

func TestSubmitReview_ClampsAndWarns(t *testing.T) {
	f := newReviewFixture(t)
	learner := &domain.Learner{ID: 1, Name: "ana"}

	f.dbMock.ExpectBegin()
	f.expectLearnerAndWord(learner, 42)
	f.states.On("GetForUpdate", mock.Anything, int64(1), int64(42)).Return(nil, store.ErrReviewStateNotFound)
	f.expectWrites(1, 42, 1)
	f.dbMock.ExpectCommit()

	res, err := f.svc.SubmitReview(context.Background(), review.Submission{
		LearnerName: "ana", WordID: 42, Quality: 9,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.6, res.UpdatedState.EaseFactor, 1e-9, "treated as quality 5")

	warnings := f.logs.FindEntries("review quality out of range, clamping")
	require.Len(t, warnings, 1)
	assert.Equal(t, "WARN", warnings[0]["level"])
	assert.EqualValues(t, 9, warnings[0]["quality"])
	assert.EqualValues(t, 5, warnings[0]["clamped_quality"])
}

func TestSubmitReview_NotFound(t *testing.T) {
	t.Run("learner", func(t *testing.T) {
		f := newReviewFixture(t)

		f.dbMock.ExpectBegin()
		f.learners.On("GetByNameForUpdate", mock.Anything, "ghost").Return(nil, store.ErrLearnerNotFound)
		f.dbMock.ExpectRollback()

		_, err := f.svc.SubmitReview(context.Background(), review.Submission{LearnerName: "ghost", WordID: 1, Quality: 3})
		assert.ErrorIs(t, err, review.ErrLearnerNotFound)
	})

	t.Run("word", func(t *testing.T) {
		f := newReviewFixture(t)

		f.dbMock.ExpectBegin()
		f.learners.On("GetByNameForUpdate", mock.Anything, "ana").Return(&domain.Learner{ID: 1, Name: "ana"}, nil)
		f.words.On("GetByID", mock.Anything, int64(999)).Return(nil, store.ErrWordNotFound)
		f.dbMock.ExpectRollback()

		_, err := f.svc.SubmitReview(context.Background(), review.Submission{LearnerName: "ana", WordID: 999, Quality: 3})
		assert.ErrorIs(t, err, review.ErrWordNotFound)
	})
}

func TestSubmitReview_WriteFailureRollsBack(t *testing.T) {
	f := newReviewFixture(t)
	learner := &domain.Learner{ID: 1, Name: "ana"}
	boom := errors.New("disk full")

	f.dbMock.ExpectBegin()
	f.expectLearnerAndWord(learner, 42)
	f.states.On("GetForUpdate", mock.Anything, int64(1), int64(42)).Return(nil, store.ErrReviewStateNotFound)
	f.states.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.history.On("Increment", mock.Anything, int64(1), int64(42), reviewNow).
		Return(&domain.StudyHistory{Count: 1}, nil)
	f.learners.On("AddPoints", mock.Anything, int64(1), 1).Return(0, boom)
	f.dbMock.ExpectRollback()

	_, err := f.svc.SubmitReview(context.Background(), review.Submission{LearnerName: "ana", WordID: 42, Quality: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var svcErr *review.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "submit_review", svcErr.Operation)
	f.rewards.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSubmitReview_BeginFailure(t *testing.T) {
	f := newReviewFixture(t)
	f.dbMock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err := f.svc.SubmitReview(context.Background(), review.Submission{LearnerName: "ana", WordID: 42, Quality: 5})
	assert.ErrorIs(t, err, store.ErrTransactionFailed)
}
