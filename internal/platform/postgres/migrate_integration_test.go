//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/spellwise/vocab-api/internal/platform/postgres"
	"github.com/spellwise/vocab-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrator_StatusAfterSetup(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	migrator, err := postgres.NewMigrator(db, nil)
	require.NoError(t, err)

	ctx := context.Background()

	statuses, err := migrator.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.True(t, s.Applied, "migration %d should be applied", s.Version)
	}

	version, err := migrator.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	require.NoError(t, migrator.Up(ctx), "re-running up is a no-op")
}
