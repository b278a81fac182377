// Package logger provides structured logging for the application.
//
// It configures a log/slog JSON handler with the level from configuration,
// carries request-scoped loggers through context.Context, and offers
// helpers for capturing log output in tests.
package logger
