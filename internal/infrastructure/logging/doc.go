// Package logging provides structured logging built on log/slog.
//
// The server logs as JSON in production and plain text in development,
// selected by configuration. Domain packages do not import this package;
// they accept a narrow Logger interface and the wiring happens in main.
package logging
