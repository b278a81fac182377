// Package leaderboard ranks learners by their point balance, optionally
// within one school and grade.
package leaderboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/service"
	"github.com/spellwise/vocab-api/internal/store"
)

// Board sizes.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Query selects a board.
type Query struct {
	Limit  int
	School string
	Grade  string
	// Viewer is the learner looking at the board. Their profile fills in a
	// blank School or Grade. An unknown viewer is ignored.
	Viewer string
}

// Board is the top of a leaderboard and the scope it was ranked over.
type Board struct {
	Scope   store.LeaderboardScope
	Entries []domain.LeaderboardEntry
}

// Standing is one learner's place on a board. Entry.Rank is zero when the
// learner falls outside Scope.
type Standing struct {
	Scope store.LeaderboardScope
	Entry domain.LeaderboardEntry
}

// Service builds leaderboards.
type Service interface {
	// Top returns up to q.Limit learners in scope. Limits below 1 mean
	// DefaultLimit; limits above MaxLimit are capped.
	Top(ctx context.Context, q Query) (*Board, error)

	// Standing returns the learner's rank within school and grade, each
	// defaulting to the learner's own profile when blank.
	// Returns ErrLearnerNotFound if the learner does not exist.
	Standing(ctx context.Context, learnerName, school, grade string) (*Standing, error)

	// Schools lists the schools learners belong to.
	Schools(ctx context.Context) ([]string, error)

	// Grades lists grades, optionally within one school.
	Grades(ctx context.Context, school string) ([]string, error)
}

type leaderboardService struct {
	learners store.LearnerStore
	logger   *slog.Logger
}

var _ Service = (*leaderboardService)(nil)

// NewService creates a leaderboard Service.
func NewService(learners store.LearnerStore, logger *slog.Logger) Service {
	if learners == nil {
		panic("learners cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &leaderboardService{
		learners: learners,
		logger:   logger.With(slog.String("component", "leaderboard_service")),
	}
}

// NormalizeLimit maps a requested board size into [1, MaxLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// scopeFor fills blank filters from the learner's profile.
func scopeFor(learner *domain.Learner, school, grade string) store.LeaderboardScope {
	scope := store.LeaderboardScope{School: school, Grade: grade}
	if learner == nil {
		return scope
	}
	if scope.School == "" {
		scope.School = learner.School
	}
	if scope.Grade == "" {
		scope.Grade = learner.Grade
	}
	return scope
}

// Top implements Service.Top.
func (s *leaderboardService) Top(ctx context.Context, q Query) (*Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var viewer *domain.Learner
	if q.Viewer != "" {
		v, err := s.learners.GetByName(ctx, q.Viewer)
		switch {
		case err == nil:
			viewer = v
		case errors.Is(err, store.ErrLearnerNotFound):
			log.Debug("ignoring unknown leaderboard viewer", slog.String("viewer", q.Viewer))
		default:
			return nil, service.NewServiceError("leaderboard", "top", err)
		}
	}

	scope := scopeFor(viewer, q.School, q.Grade)
	entries, err := s.learners.Leaderboard(ctx, scope, NormalizeLimit(q.Limit))
	if err != nil {
		log.Error("failed to load leaderboard", redact.Attr(err))
		return nil, service.NewServiceError("leaderboard", "top", err)
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	return &Board{Scope: scope, Entries: entries}, nil
}

// Standing implements Service.Standing.
func (s *leaderboardService) Standing(ctx context.Context, learnerName, school, grade string) (*Standing, error) {
	learner, err := s.learners.GetByName(ctx, learnerName)
	if err != nil {
		if errors.Is(err, store.ErrLearnerNotFound) {
			return nil, service.ErrLearnerNotFound
		}
		return nil, service.NewServiceError("leaderboard", "standing", err)
	}

	scope := scopeFor(learner, school, grade)
	entry, err := s.learners.Standing(ctx, learner.Name, scope)
	switch {
	case err == nil:
		return &Standing{Scope: scope, Entry: *entry}, nil
	case errors.Is(err, store.ErrLearnerNotFound):
		// Outside the requested scope: report the balance without a rank.
		return &Standing{
			Scope: scope,
			Entry: domain.LeaderboardEntry{
				Name:        learner.Name,
				TotalPoints: learner.TotalPoints,
				School:      learner.School,
				Grade:       learner.Grade,
			},
		}, nil
	default:
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to load standing", redact.Attr(err), slog.Int64("learner_id", learner.ID))
		return nil, service.NewServiceError("leaderboard", "standing", err)
	}
}

// Schools implements Service.Schools.
func (s *leaderboardService) Schools(ctx context.Context) ([]string, error) {
	schools, err := s.learners.Schools(ctx)
	if err != nil {
		return nil, service.NewServiceError("leaderboard", "schools", err)
	}
	if schools == nil {
		schools = []string{}
	}
	return schools, nil
}

// Grades implements Service.Grades.
func (s *leaderboardService) Grades(ctx context.Context, school string) ([]string, error) {
	grades, err := s.learners.Grades(ctx, school)
	if err != nil {
		return nil, service.NewServiceError("leaderboard", "grades", err)
	}
	if grades == nil {
		grades = []string{}
	}
	return grades, nil
}
