// Package postgres implements the internal/store interfaces on PostgreSQL.
//
// Stores take a store.DBTX, so the same code runs against a *sql.DB or inside
// a transaction obtained through WithTx. Queries with optional clauses are
// assembled with squirrel. The schema lives in the embedded goose migrations
// applied by Migrator.
package postgres
