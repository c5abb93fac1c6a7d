// Package logging constructs the process-wide slog logger and provides
// helpers for attaching request-scoped attributes pulled from context.
package logging
