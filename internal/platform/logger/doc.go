// Package logger sets up the process-wide JSON slog logger and carries
// request-scoped loggers through a context.Context.
package logger
