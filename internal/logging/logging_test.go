package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}

	logger.Warn().Str("channel", "jobs").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["message"] != "kept" {
		t.Errorf("expected message 'kept', got %v", entry["message"])
	}
	if entry["channel"] != "jobs" {
		t.Errorf("expected channel 'jobs', got %v", entry["channel"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp field")
	}
}

func TestOrNop(t *testing.T) {
	nop := OrNop(nil)
	if nop.GetLevel() != zerolog.Disabled {
		t.Errorf("nil logger should map to a disabled logger, got level %v", nop.GetLevel())
	}

	var buf bytes.Buffer
	l := New("debug", &buf)
	got := OrNop(&l)
	got.Debug().Msg("hello")
	if buf.Len() == 0 {
		t.Error("non-nil logger should be used as is")
	}
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	cl := NewCronLogger(New("debug", &buf))

	cl.Info("run", "entry", 1, "now", "soon")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "debug" {
		t.Errorf("expected level 'debug', got %v", entry["level"])
	}
	if entry["entry"] != float64(1) {
		t.Errorf("expected entry=1, got %v", entry["entry"])
	}

	buf.Reset()
	cl.Error(errors.New("boom"), "job failed", "dangling")

	entry = nil
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "error" {
		t.Errorf("expected level 'error', got %v", entry["level"])
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", entry["error"])
	}
}
