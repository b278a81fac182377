//go:build integration

// Package testdb provides the database used by integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can share one database without cleaning up after
// themselves:
//
//	func TestLearnerStore_Create(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        learners := postgres.NewPostgresLearnerStore(tx, nil)
//	        ...
//	    })
//	}
//
// When DATABASE_URL is set the tests use that database. Otherwise a throwaway
// PostgreSQL container is started once per test binary with testcontainers.
// Either way the embedded goose migrations are applied before the first test.
package testdb
