package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Manager owns the live asset Store and hot-swaps it when the resource
// directory or a texture pack changes on disk.
type Manager struct {
	resourceDir string
	packDir     string
	logger      *slog.Logger
	debounce    time.Duration

	store atomic.Pointer[Store]
}

// NewManager creates a Manager. Call Load before serving requests.
func NewManager(resourceDir, packDir string, logger *slog.Logger) *Manager {
	return &Manager{
		resourceDir: resourceDir,
		packDir:     packDir,
		logger:      logger.With("component", "assets"),
		debounce:    time.Second,
	}
}

// SetDebounce overrides the reload debounce interval (for testing).
func (m *Manager) SetDebounce(d time.Duration) {
	m.debounce = d
}

// Load builds a fresh Store and swaps it in. On failure the previous
// Store stays live.
func (m *Manager) Load() error {
	s, err := Load(m.resourceDir, m.packDir, m.logger)
	if err != nil {
		return err
	}
	m.store.Store(s)
	return nil
}

// Store returns the current snapshot. Callers keep using the snapshot
// they were handed even if a reload swaps in a newer one mid-render.
func (m *Manager) Store() *Store {
	return m.store.Load()
}

// Watch blocks until ctx is canceled, reloading assets when files under
// the resource or pack directory change. Events are coalesced with a
// debounce so a multi-file copy triggers one reload.
func (m *Manager) Watch(ctx context.Context) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		m.logger.Warn("fsnotify unavailable, asset hot-reload disabled", "error", err)
		<-ctx.Done()
		return
	}
	defer w.Close() //nolint:errcheck

	for _, dir := range m.watchDirs() {
		if err := w.Add(dir); err != nil {
			m.logger.Warn("cannot watch directory", "path", dir, "error", err)
		}
	}
	m.logger.Info("asset watcher starting")

	// Starts stopped; reset on each relevant event.
	reloadTimer := time.NewTimer(0)
	if !reloadTimer.Stop() {
		<-reloadTimer.C
	}
	reloadPending := false

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("asset watcher stopping")
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevantEvent(ev) {
				continue
			}
			m.logger.Debug("asset change detected", "path", ev.Name, "op", ev.Op.String())
			reloadTimer.Reset(m.debounce)
			reloadPending = true

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.logger.Warn("watcher error", "error", err)

		case <-reloadTimer.C:
			if !reloadPending {
				continue
			}
			reloadPending = false
			if err := m.Load(); err != nil {
				m.logger.Error("asset reload failed, keeping previous assets", "error", err)
			} else {
				m.logger.Info("assets reloaded")
			}
		}
	}
}

func (m *Manager) watchDirs() []string {
	dirs := []string{m.resourceDir}
	if m.packDir != "" {
		dirs = append(dirs, m.packDir)
	}
	// Watch the per-class material directories too; fsnotify does not
	// recurse.
	matches, err := filepath.Glob(filepath.Join(m.resourceDir, "materials", "*"))
	if err == nil {
		dirs = append(dirs, matches...)
	}
	return dirs
}

func relevantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".zip", ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}
