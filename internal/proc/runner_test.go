package proc

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestCommandRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test commands are unix-shaped")
	}

	t.Run("captures stdout", func(t *testing.T) {
		r := NewCommandRunner(5 * time.Second)
		out, err := r.Run(context.Background(), "echo", "hello")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if strings.TrimSpace(string(out)) != "hello" {
			t.Errorf("output = %q, want %q", out, "hello")
		}
	})

	t.Run("kills a command that exceeds the timeout", func(t *testing.T) {
		r := NewCommandRunner(100 * time.Millisecond)
		start := time.Now()
		_, err := r.Run(context.Background(), "sleep", "10")
		if err == nil {
			t.Fatal("Run() expected timeout error, got nil")
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("command was not killed promptly (took %s)", elapsed)
		}
	})

	t.Run("returns error for missing binary", func(t *testing.T) {
		r := NewCommandRunner(time.Second)
		if _, err := r.Run(context.Background(), "no-such-binary-xyz"); err == nil {
			t.Error("Run() expected error for missing binary, got nil")
		}
	})
}
