package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := &opHandler{w: &buf, opID: "20250310T091500Z"}
	logger := slog.New(h)

	logger.Info("volumes probed", "count", 3)

	line := buf.String()
	fields := strings.Split(strings.TrimSuffix(line, "\n"), "\t")
	if len(fields) != 5 {
		t.Fatalf("log line has %d fields, want 5: %q", len(fields), line)
	}

	if _, err := time.Parse("2006-01-02T15:04:05Z", fields[0]); err != nil {
		t.Errorf("timestamp field %q does not parse: %v", fields[0], err)
	}
	if fields[1] != "INFO" {
		t.Errorf("level = %q, want INFO", fields[1])
	}
	if fields[2] != "20250310T091500Z" {
		t.Errorf("opID = %q", fields[2])
	}
	if fields[3] != "volumes probed" {
		t.Errorf("message = %q", fields[3])
	}
	if fields[4] != "count=3" {
		t.Errorf("attr = %q, want count=3", fields[4])
	}
}

func TestOpHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &opHandler{w: &buf, opID: "op"}
	logger := slog.New(h).With("op", "ListVolumes")

	logger.Warn("probe degraded", "reason", "timeout")

	line := buf.String()
	if !strings.Contains(line, "op=ListVolumes") {
		t.Errorf("pre-set attr missing from %q", line)
	}
	if !strings.Contains(line, "reason=timeout") {
		t.Errorf("per-record attr missing from %q", line)
	}
	// Pre-set attrs come before per-record attrs.
	if strings.Index(line, "op=ListVolumes") > strings.Index(line, "reason=timeout") {
		t.Errorf("attr ordering wrong in %q", line)
	}
}

func TestOpHandler_Enabled(t *testing.T) {
	h := &opHandler{w: &bytes.Buffer{}, opID: "op"}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if !h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = false, want true", level)
		}
	}
}

func TestNewLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "log")

	logger, f, err := newLogger(logDir, "20250310T091500Z", "GenerateReport")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	logger.Info("report generated", "reportID", "r1")

	data, err := os.ReadFile(filepath.Join(logDir, "residue.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "report generated") {
		t.Errorf("log file missing message: %q", line)
	}
	if !strings.Contains(line, "op=GenerateReport") {
		t.Errorf("log file missing operation tag: %q", line)
	}
}
