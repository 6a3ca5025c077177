package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner serves canned command output keyed by the full command
// line ("name arg1 arg2"). Commands without a canned response fail,
// matching a missing or broken OS tool.
type FakeRunner struct {
	mu      sync.Mutex
	outputs map[string][]byte
	errs    map[string]error
	calls   []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		outputs: make(map[string][]byte),
		errs:    make(map[string]error),
	}
}

// Stub registers canned stdout for a command line.
func (r *FakeRunner) Stub(commandLine string, output []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[commandLine] = output
}

// StubError registers a failure for a command line.
func (r *FakeRunner) StubError(commandLine string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[commandLine] = err
}

// Calls returns every command line executed so far.
func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, key)

	if err, ok := r.errs[key]; ok {
		return nil, err
	}
	if out, ok := r.outputs[key]; ok {
		return out, nil
	}
	return nil, fmt.Errorf("no stub for command: %s", key)
}
