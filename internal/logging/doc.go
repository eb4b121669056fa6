// Package logging builds the slog loggers used by bookshelf: a one-line
// console format or JSON, written to stderr and optionally a log file, with
// every record tagged by the invocation's session_id.
package logging
