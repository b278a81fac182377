// Package domain contains the core entities of the vocabulary trainer:
// learners, words, per-word review state and the points ledger.
// It has no knowledge of storage or transport.
package domain
