package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestReconfigureChangesLevel(t *testing.T) {
	mgr, logger := NewManager(Config{Level: "info", Format: "json"})
	defer mgr.Close() //nolint:errcheck

	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be disabled at level info")
	}

	mgr.Reconfigure(Config{Level: "debug", Format: "json"})
	if !logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be enabled after reconfigure")
	}

	mgr.Reconfigure(Config{Level: "error", Format: "json"})
	if logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn should be disabled at level error")
	}
}

func TestReconfigureSurvivesDerivedLoggers(t *testing.T) {
	mgr, logger := NewManager(Config{Level: "error", Format: "json"})
	defer mgr.Close() //nolint:errcheck

	// Loggers derived before a reconfigure must see the new level.
	derived := logger.With(slog.String("component", "compose"))
	mgr.Reconfigure(Config{Level: "debug", Format: "json"})
	if !derived.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("derived logger did not pick up the new level")
	}
}

func TestConfigSnapshot(t *testing.T) {
	mgr, _ := NewManager(Config{Level: "info", Format: "json"})
	defer mgr.Close() //nolint:errcheck

	mgr.Reconfigure(Config{Level: "warn", Format: "text"})
	got := mgr.Config()
	if got.Level != "warn" || got.Format != "text" {
		t.Errorf("unexpected config snapshot: %+v", got)
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "scplabel.log")

	mgr, logger := NewManager(Config{Level: "info", Format: "json", File: logFile})
	logger.Info("render complete", slog.String("class", "safe"))
	if err := mgr.Close(); err != nil {
		t.Fatalf("closing manager: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestCloseIdempotent(t *testing.T) {
	mgr, _ := NewManager(Config{Level: "info", Format: "json", File: filepath.Join(t.TempDir(), "x.log")})
	if err := mgr.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidators(t *testing.T) {
	for _, l := range []string{"debug", "info", "warn", "error"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false", l)
		}
	}
	if ValidLevel("trace") || ValidLevel("DEBUG") || ValidLevel("") {
		t.Error("unknown levels accepted")
	}
	if !ValidFormat("text") || !ValidFormat("json") {
		t.Error("text/json rejected")
	}
	if ValidFormat("logfmt") || ValidFormat("") {
		t.Error("unknown formats accepted")
	}
}
