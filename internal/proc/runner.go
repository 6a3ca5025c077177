// Package proc runs external OS tools under a hard timeout. Every
// probe that shells out goes through a Runner so tests can substitute
// captured output and so no subprocess can block a scan indefinitely.
package proc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	// Run executes name with args. The context bounds the subprocess;
	// when it fires the process is killed and an error returned.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandRunner is the real Runner. A zero Timeout means the caller's
// context is the only bound.
type CommandRunner struct {
	Timeout time.Duration
}

// NewCommandRunner creates a CommandRunner with the given per-call timeout.
func NewCommandRunner(timeout time.Duration) *CommandRunner {
	return &CommandRunner{Timeout: timeout}
}

func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// Stderr is intentionally discarded: probe tools write noise there
	// and a failed tool degrades to empty results anyway.

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command %s timed out after %s", name, r.Timeout)
		}
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

var _ Runner = (*CommandRunner)(nil)
