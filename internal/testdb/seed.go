//go:build integration

package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spellwise/vocab-api/internal/domain"
	"github.com/spellwise/vocab-api/internal/store"
	"github.com/stretchr/testify/require"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedLearner inserts a learner with a unique name and assigns it the given tags,
// creating tags that do not exist yet.
func SeedLearner(t *testing.T, db store.DBTX, tags ...string) domain.Learner {
	t.Helper()
	ctx := context.Background()

	learner := domain.Learner{Name: "learner-" + UniqueSuffix()}
	err := db.QueryRowContext(ctx,
		`INSERT INTO learners (name) VALUES ($1) RETURNING id, total_points, created_at`,
		learner.Name,
	).Scan(&learner.ID, &learner.TotalPoints, &learner.CreatedAt)
	require.NoError(t, err, "SeedLearner insert learner")

	for _, tag := range tags {
		tagID := SeedTag(t, db, tag)
		_, err := db.ExecContext(ctx,
			`INSERT INTO learner_tags (learner_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			learner.ID, tagID,
		)
		require.NoError(t, err, "SeedLearner assign tag")
	}

	return learner
}

// SeedTag returns the ID of the named tag, inserting it if needed.
func SeedTag(t *testing.T, db store.DBTX, name string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO tags (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name,
	).Scan(&id)
	require.NoError(t, err, "SeedTag")
	return id
}

// SeedWord inserts a word linked to the given tags.
func SeedWord(t *testing.T, db store.DBTX, text string, tags ...string) domain.Word {
	t.Helper()
	ctx := context.Background()

	word := domain.Word{Text: text, Language: domain.DefaultLanguage}
	err := db.QueryRowContext(ctx,
		`INSERT INTO words (text, language) VALUES ($1, $2) RETURNING id`,
		word.Text, word.Language,
	).Scan(&word.ID)
	require.NoError(t, err, "SeedWord insert word")

	for _, tag := range tags {
		tagID := SeedTag(t, db, tag)
		_, err := db.ExecContext(ctx,
			`INSERT INTO word_tags (word_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			word.ID, tagID,
		)
		require.NoError(t, err, "SeedWord assign tag")
	}

	return word
}

// SeedReviewState inserts a review state due on dueDate.
func SeedReviewState(
	t *testing.T,
	db store.DBTX,
	learnerID, wordID int64,
	easeFactor float64,
	dueDate time.Time,
) {
	t.Helper()

	_, err := db.ExecContext(context.Background(),
		`INSERT INTO review_states
		   (learner_id, word_id, repetitions, interval_days, ease_factor, due_date, status)
		 VALUES ($1, $2, 1, 1, $3, $4, 'review')`,
		learnerID, wordID, easeFactor, dueDate.Format("2006-01-02"),
	)
	require.NoError(t, err, "SeedReviewState")
}
