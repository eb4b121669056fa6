package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/config"
)

// FieldSessionID is the structured logging key for the per-invocation session identifier.
const FieldSessionID = "session_id"

// Options describes logger construction parameters.
type Options struct {
	Level     string
	Format    string
	SessionID string
}

// NewSessionID returns a fresh identifier for one CLI invocation.
func NewSessionID() string {
	return uuid.NewString()
}

// New builds a logger writing to w. Debug level also records the call site.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	addSource := level <= slog.LevelDebug

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		handler = newConsoleHandler(w, level, addSource)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			AddSource:   addSource,
			ReplaceAttr: jsonReplaceAttr,
		})
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	logger := slog.New(handler)
	if id := strings.TrimSpace(opts.SessionID); id != "" {
		logger = logger.With(FieldSessionID, id)
	}
	return logger, nil
}

// NewFromConfig logs to stderr and, when logging.file is set, appends to that
// file as well. The log file's directory is created on demand.
func NewFromConfig(cfg *config.Config, sessionID string) (*slog.Logger, error) {
	var w io.Writer = os.Stderr
	opts := Options{Level: "warn", SessionID: sessionID}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		if path := cfg.Logging.File; path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			w = io.MultiWriter(os.Stderr, file)
		}
	}
	return New(w, opts)
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(value) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// jsonReplaceAttr shortens the time key and lower-cases level names so JSON
// records line up with the console layout.
func jsonReplaceAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok {
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return attr
}
