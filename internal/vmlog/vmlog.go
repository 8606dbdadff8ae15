// Package vmlog wraps log/slog with a small text handler for the
// interpreter's ambient diagnostics (never the emulated program's own
// console I/O, which goes through package console instead).
package vmlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type handler struct {
	out io.Writer
	h   slog.Handler
	mu  *sync.Mutex
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu}
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	strs := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}

	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, a.Key+"="+a.Value.String())
		return true
	})

	line := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(line)
	return err
}

// New builds a logger writing level-prefixed, timestamped lines to w.
// A nil w discards everything, giving callers a safe default logger.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(&handler{
		out: w,
		h:   slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
		mu:  &sync.Mutex{},
	})
}

// NewStderr is the common case: a logger writing to stderr at the
// given level, used by cmd/lc3vm when -v is passed.
func NewStderr(level slog.Level) *slog.Logger {
	return New(os.Stderr, level)
}
