// Package logging owns the slog setup for the service: a leveled JSON
// or text handler writing to stdout, optionally teed into a rotating
// log file, reconfigurable at runtime.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level, output format, and an optional rotating
// log file. An empty File logs to stdout only.
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file,omitempty"`
}

// Rotation policy for the optional log file.
const (
	fileMaxSizeMB = 50
	fileMaxCount  = 5
	fileMaxDays   = 14
)

// swapHandler delegates to an inner slog.Handler that can be replaced
// atomically, so loggers handed out at startup pick up reconfiguration.
type swapHandler struct {
	inner atomic.Pointer[slog.Handler]
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{}
	s.inner.Store(&h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) { s.inner.Store(&h) }

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.inner.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return (*s.inner.Load()).Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newSwapHandler((*s.inner.Load()).WithAttrs(attrs))
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	return newSwapHandler((*s.inner.Load()).WithGroup(name))
}

// Manager owns the logger lifecycle and supports runtime changes to
// level, format, and log file.
type Manager struct {
	mu      sync.Mutex
	cfg     Config
	level   *slog.LevelVar
	handler *swapHandler
	file    io.Closer
}

// NewManager builds a Manager from cfg and returns it with a logger
// that stays valid across later Reconfigure calls.
func NewManager(cfg Config) (*Manager, *slog.Logger) {
	m := &Manager{cfg: cfg, level: &slog.LevelVar{}}
	m.level.Set(parseLevel(cfg.Level))

	w, file := m.openWriter(cfg)
	m.file = file
	m.handler = newSwapHandler(buildHandler(w, m.level, cfg.Format))

	return m, slog.New(m.handler)
}

// Reconfigure applies cfg. Level changes take effect immediately via
// the shared LevelVar; format or file changes rebuild the handler.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.level.Set(parseLevel(cfg.Level))

	if cfg.Format != m.cfg.Format || cfg.File != m.cfg.File {
		if m.file != nil {
			m.file.Close() //nolint:errcheck
			m.file = nil
		}
		w, file := m.openWriter(cfg)
		m.file = file
		m.handler.swap(buildHandler(w, m.level, cfg.Format))
	}

	m.cfg = cfg
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Close releases the log file writer, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

func (m *Manager) openWriter(cfg Config) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return os.Stdout, nil
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxCount,
		MaxAge:     fileMaxDays,
	}
	return io.MultiWriter(os.Stdout, lj), lj
}

func buildHandler(w io.Writer, level slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a recognized log level.
func ValidLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat reports whether s names a recognized log format.
func ValidFormat(s string) bool {
	switch s {
	case "text", "json":
		return true
	}
	return false
}
