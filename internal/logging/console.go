package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2026-01-02T15:04:05Z WARN catalog: message key=value
//
// The component attribute becomes the prefix instead of a key=value pair.
// Attributes bound with WithAttrs are rendered once and reused.
type consoleHandler struct {
	out       *syncWriter
	level     slog.Level
	addSource bool
	component string
	group     string
	bound     []byte
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func newConsoleHandler(w io.Writer, level slog.Level, addSource bool) *consoleHandler {
	return &consoleHandler{out: &syncWriter{w: w}, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	component := h.component
	var attrs []byte
	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" && a.Key == FieldComponent {
			component = a.Value.String()
			return true
		}
		attrs = appendAttr(attrs, h.group, a)
		return true
	})

	line := make([]byte, 0, 96+len(h.bound)+len(attrs))
	line = ts.UTC().AppendFormat(line, time.RFC3339)
	line = append(line, ' ')
	line = append(line, r.Level.String()...)
	line = append(line, ' ')
	if component != "" {
		line = append(line, component...)
		line = append(line, ": "...)
	}
	line = append(line, r.Message...)
	if h.addSource {
		if src := r.Source(); src != nil {
			line = fmt.Appendf(line, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	line = append(line, h.bound...)
	line = append(line, attrs...)
	line = append(line, '\n')

	_, err := h.out.Write(line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = slices.Clip(h.bound)
	for _, a := range attrs {
		if h.group == "" && a.Key == FieldComponent {
			next.component = a.Value.String()
			continue
		}
		next.bound = appendAttr(next.bound, h.group, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group += name + "."
	return &next
}

func appendAttr(buf []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = appendAttr(buf, group, member)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, group...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')

	var text string
	switch a.Value.Kind() {
	case slog.KindTime:
		text = a.Value.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		text = fmt.Sprint(a.Value.Any())
	default:
		text = a.Value.String()
	}
	if text == "" || strings.ContainsFunc(text, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.AppendQuote(buf, text)
	}
	return append(buf, text...)
}
