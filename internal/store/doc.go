// Package store defines the persistence interfaces used by the scheduler,
// deck and reward services, plus the transaction helper that groups writes
// of one review submission into a single atomic unit.
package store
