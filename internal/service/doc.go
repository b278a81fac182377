// Package service holds what the use-case packages below it share: the
// sentinel errors the API layer maps to status codes and the generic
// ServiceError wrapper.
//
// The use cases themselves live in subpackages:
//
//   - deck: builds the day's study deck for a learner
//   - review: records one answered card atomically
//   - reward: points balance, ledger, redemption and study history
//
// Services receive stores through constructor injection and never depend on
// a concrete database implementation.
package service
