package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-api/pkg/logging"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("verbose"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := &logging.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelInfo)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want %q", cfg.Format, logging.FormatText)
	}

	bad := &logging.Config{Level: "loud"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() with invalid level succeeded, want error")
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, &logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}))

	logger.Info("project created", "id", "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "project created" || entry["id"] != "abc" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, &logging.Config{Level: logging.LevelWarn, Format: logging.FormatText, NoColor: true}))

	logger.Info("hidden")
	logger.Warn("storage cleanup failed", "path", "projects/a.pdf")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written below warn level: %q", out)
	}
	if !strings.Contains(out, "storage cleanup failed") || !strings.Contains(out, "path=projects/a.pdf") {
		t.Errorf("output = %q", out)
	}
}
