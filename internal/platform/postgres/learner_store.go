package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/spellwise/vocab-api/internal/redact"
	"github.com/spellwise/vocab-api/internal/store"
)

// psql builds statements with PostgreSQL $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresLearnerStore implements the store.LearnerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLearnerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLearnerStore creates a new PostgreSQL implementation of the LearnerStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLearnerStore(db store.DBTX, logger *slog.Logger) *PostgresLearnerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLearnerStore{
		db:     db,
		logger: logger.With(slog.String("component", "learner_store")),
	}
}

// Ensure PostgresLearnerStore implements store.LearnerStore interface
var _ store.LearnerStore = (*PostgresLearnerStore)(nil)

const learnerColumns = "id, name, total_points, COALESCE(school, ''), COALESCE(grade, ''), " +
	"last_point_earned_at, created_at"

// leaderboardOrder ranks learners. Ties on points go to whoever earned a
// point most recently; learners who never earned one come last.
const leaderboardOrder = "total_points DESC, last_point_earned_at DESC NULLS LAST, LOWER(name) ASC, id ASC"

// Create implements store.LearnerStore.Create
func (s *PostgresLearnerStore) Create(ctx context.Context, learner *domain.Learner) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := learner.Validate(); err != nil {
		log.Warn("learner validation failed during create",
			redact.Attr(err),
			slog.String("name", learner.Name))
		return err
	}

	query := `
		INSERT INTO learners (name, total_points, school, grade)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		learner.Name, learner.TotalPoints, strings.TrimSpace(learner.School), strings.TrimSpace(learner.Grade)).
		Scan(&learner.ID, &learner.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrLearnerNameExists
		}
		log.Error("failed to create learner", redact.Attr(err))
		return MapError(err)
	}

	log.Info("learner created", slog.Int64("learner_id", learner.ID))
	return nil
}

// GetByID implements store.LearnerStore.GetByID
func (s *PostgresLearnerStore) GetByID(ctx context.Context, id int64) (*domain.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE id = $1`
	return s.getOne(ctx, "get_by_id", query, id)
}

// GetByName implements store.LearnerStore.GetByName
func (s *PostgresLearnerStore) GetByName(ctx context.Context, name string) (*domain.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE name = $1`
	return s.getOne(ctx, "get_by_name", query, name)
}

// GetByNameForUpdate implements store.LearnerStore.GetByNameForUpdate
func (s *PostgresLearnerStore) GetByNameForUpdate(ctx context.Context, name string) (*domain.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE name = $1 FOR UPDATE`
	return s.getOne(ctx, "get_by_name_for_update", query, name)
}

func (s *PostgresLearnerStore) getOne(ctx context.Context, op, query string, arg any) (*domain.Learner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		l        domain.Learner
		lastEarn sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&l.ID, &l.Name, &l.TotalPoints, &l.School, &l.Grade, &lastEarn, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("learner not found", slog.String("operation", op), slog.Any("key", arg))
			return nil, store.ErrLearnerNotFound
		}
		log.Error("failed to get learner", slog.String("operation", op), redact.Attr(err))
		return nil, store.NewStoreError("learner", op, "query failed", MapError(err))
	}
	if lastEarn.Valid {
		t := lastEarn.Time.UTC()
		l.LastPointEarnedAt = &t
	}

	return &l, nil
}

// AddPoints implements store.LearnerStore.AddPoints
func (s *PostgresLearnerStore) AddPoints(ctx context.Context, id int64, delta int) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	update := psql.
		Update("learners").
		Set("total_points", squirrel.Expr("total_points + ?", delta))
	if delta > 0 {
		update = update.Set("last_point_earned_at", squirrel.Expr("NOW()"))
	}
	query, args, err := update.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING total_points").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build points update: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrLearnerNotFound
		}
		if IsCheckConstraintViolation(err) {
			log.Warn("points update would make balance negative",
				slog.Int64("learner_id", id),
				slog.Int("delta", delta))
			return 0, MapError(err)
		}
		log.Error("failed to update points", redact.Attr(err), slog.Int64("learner_id", id))
		return 0, store.NewStoreError("learner", "add_points", "update failed", MapError(err))
	}

	log.Debug("points updated",
		slog.Int64("learner_id", id),
		slog.Int("delta", delta),
		slog.Int("total_points", total))
	return total, nil
}

// rankedLearners numbers every learner in scope by leaderboardOrder.
func rankedLearners(scope store.LeaderboardScope) squirrel.SelectBuilder {
	q := psql.
		Select(
			"ROW_NUMBER() OVER (ORDER BY "+leaderboardOrder+") AS rank",
			"name",
			"total_points",
			"COALESCE(school, '') AS school",
			"COALESCE(grade, '') AS grade",
		).
		From("learners")
	if school := strings.TrimSpace(scope.School); school != "" {
		q = q.Where("LOWER(TRIM(school)) = LOWER(?)", school)
	}
	if grade := strings.TrimSpace(scope.Grade); grade != "" {
		q = q.Where("LOWER(TRIM(grade)) = LOWER(?)", grade)
	}
	return q
}

// Leaderboard implements store.LearnerStore.Leaderboard
func (s *PostgresLearnerStore) Leaderboard(
	ctx context.Context,
	scope store.LeaderboardScope,
	limit int,
) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := rankedLearners(scope).
		OrderBy("rank").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query leaderboard", redact.Attr(err))
		return nil, store.NewStoreError("learner", "leaderboard", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Rank, &e.Name, &e.TotalPoints, &e.School, &e.Grade); err != nil {
			return nil, store.NewStoreError("learner", "leaderboard", "scan failed", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learner", "leaderboard", "iteration failed", MapError(err))
	}
	return entries, nil
}

// Standing implements store.LearnerStore.Standing
func (s *PostgresLearnerStore) Standing(
	ctx context.Context,
	name string,
	scope store.LeaderboardScope,
) (*domain.LeaderboardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.
		Select("rank", "name", "total_points", "school", "grade").
		FromSelect(rankedLearners(scope), "ranked").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build standing query: %w", err)
	}

	var e domain.LeaderboardEntry
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&e.Rank, &e.Name, &e.TotalPoints, &e.School, &e.Grade)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLearnerNotFound
		}
		log.Error("failed to query standing", redact.Attr(err))
		return nil, store.NewStoreError("learner", "standing", "query failed", MapError(err))
	}
	return &e, nil
}

// Schools implements store.LearnerStore.Schools
func (s *PostgresLearnerStore) Schools(ctx context.Context) ([]string, error) {
	return s.distinctProfileValues(ctx, "school", "")
}

// Grades implements store.LearnerStore.Grades
func (s *PostgresLearnerStore) Grades(ctx context.Context, school string) ([]string, error) {
	return s.distinctProfileValues(ctx, "grade", school)
}

// distinctProfileValues lists the distinct upper-cased values of column,
// which must be school or grade.
func (s *PostgresLearnerStore) distinctProfileValues(
	ctx context.Context,
	column string,
	school string,
) ([]string, error) {
	value := "UPPER(TRIM(" + column + "))"
	q := psql.
		Select(value+" AS value").
		Distinct().
		From("learners").
		Where("TRIM(COALESCE(" + column + ", '')) <> ''").
		OrderBy("value")
	if school = strings.TrimSpace(school); school != "" {
		q = q.Where("LOWER(TRIM(school)) = LOWER(?)", school)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s listing: %w", column, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list profile values", slog.String("column", column), redact.Attr(err))
		return nil, store.NewStoreError("learner", "list_"+column, "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, store.NewStoreError("learner", "list_"+column, "scan failed", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learner", "list_"+column, "iteration failed", MapError(err))
	}
	return values, nil
}

// WithTx implements store.LearnerStore.WithTx
func (s *PostgresLearnerStore) WithTx(tx *sql.Tx) store.LearnerStore {
	return &PostgresLearnerStore{
		db:     tx,
		logger: s.logger,
	}
}
