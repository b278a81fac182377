//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/spellwise/vocab-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// containerImage is the PostgreSQL image started when DATABASE_URL is unset.
const containerImage = "postgres:16-alpine"

var (
	setupOnce sync.Once
	sharedDSN string
	setupErr  error
)

// GetTestDatabaseURL returns the externally provided test database URL, if any.
// It checks DATABASE_URL and VOCAB_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("VOCAB_TEST_DB_URL")
}

// GetTestDBWithT returns a migrated database connection for testing.
// The connection is closed via t.Cleanup.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	setupOnce.Do(func() {
		sharedDSN, setupErr = resolveAndMigrate()
	})
	require.NoError(t, setupErr, "failed to set up test database")

	db, err := sql.Open("pgx", sharedDSN)
	require.NoError(t, err, "failed to open test database")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	return db
}

func resolveAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		var err error
		dsn, err = startContainer(ctx)
		if err != nil {
			return "", err
		}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return "", fmt.Errorf("sql.Open: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("db ping: %w", err)
	}

	migrator, err := postgres.NewMigrator(db, nil)
	if err != nil {
		return "", err
	}
	if err := migrator.Up(ctx); err != nil {
		return "", err
	}

	return dsn, nil
}

// startContainer launches a PostgreSQL container that lives until the test
// process exits.
func startContainer(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        containerImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "vocab",
			"POSTGRES_PASSWORD": "vocab",
			"POSTGRES_DB":       "vocab_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("postgres://vocab:vocab@%s:%s/vocab_test?sslmode=disable", host, port.Port()), nil
}
