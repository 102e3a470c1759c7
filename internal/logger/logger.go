// Package logger sets up the engine's structured logging: slog records go to
// a size-rotated file on disk and, mirrored as plain lines, into a small
// in-memory ring that the overlay can display.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogPath is where the engine log lands when the config does not say
// otherwise, relative to the working directory.
const DefaultLogPath = "logs/engine.log"

const (
	maxFileSizeMB = 10
	maxBackups    = 3
	ringSize      = 64
)

// Ring keeps the most recent log lines in memory for the overlay readout.
// Safe for concurrent use.
type Ring struct {
	mu    sync.Mutex
	lines []string
}

// Lines returns a copy of the stored lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *Ring) push(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if len(r.lines) > ringSize {
		r.lines = r.lines[len(r.lines)-ringSize:]
	}
}

// ringHandler wraps another slog.Handler and mirrors warn-and-above records
// into the ring as single formatted lines.
type ringHandler struct {
	inner slog.Handler
	ring  *Ring
}

func (h *ringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ringHandler) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level >= slog.LevelWarn {
		line := rec.Time.Format("15:04:05") + " " + rec.Message
		rec.Attrs(func(a slog.Attr) bool {
			line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
			return true
		})
		h.ring.push(line)
	}
	return h.inner.Handle(ctx, rec)
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringHandler{inner: h.inner.WithAttrs(attrs), ring: h.ring}
}

func (h *ringHandler) WithGroup(name string) slog.Handler {
	return &ringHandler{inner: h.inner.WithGroup(name), ring: h.ring}
}

// New returns a logger writing JSON records to a rotated file at path, plus
// the ring mirroring recent warnings for the overlay. An empty path uses
// DefaultLogPath.
func New(path string, level slog.Level) (*slog.Logger, *Ring) {
	if path == "" {
		path = DefaultLogPath
	}
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
	}
	ring := &Ring{}
	h := &ringHandler{
		inner: slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}),
		ring:  ring,
	}
	return slog.New(h), ring
}
