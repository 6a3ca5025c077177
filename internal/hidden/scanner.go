// Package hidden discovers hidden and sensitive filesystem artifacts
// under a scan root. Discovery runs three independent techniques
// concurrently (the OS-native hidden-attribute query, a bounded
// dot-prefix walk, and a fixed table of well-known sensitive paths),
// each holding a fraction of the result cap so no technique starves
// the others. The combined list is sorted by size and truncated once,
// at the end, so results are deterministic regardless of which
// technique finishes first.
package hidden

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"residue/internal/fs"
	"residue/internal/model"
	"residue/internal/proc"
)

// DefaultCap is the hard cap on returned artifacts.
const DefaultCap = 200

// DefaultMaxDepth is the recursion bound below the scan root.
const DefaultMaxDepth = 3

// Scanner discovers hidden artifacts. Safe for concurrent scans.
type Scanner struct {
	runner   proc.Runner
	goos     string
	cap      int
	maxDepth int
	exclude  *fs.ExcludeMatcher
	now      func() time.Time
	homeDir  func() (string, error)
}

// Option adjusts a Scanner.
type Option func(*Scanner)

// WithGOOS overrides the platform branch.
func WithGOOS(goos string) Option { return func(s *Scanner) { s.goos = goos } }

// WithCap overrides the artifact cap.
func WithCap(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.cap = n
		}
	}
}

// WithMaxDepth overrides the walk depth bound.
func WithMaxDepth(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithExclude sets glob patterns skipped by the dot-prefix walk.
func WithExclude(patterns []string) Option {
	return func(s *Scanner) { s.exclude = fs.NewExcludeMatcher(patterns) }
}

// WithNow overrides the timestamp source.
func WithNow(now func() time.Time) Option { return func(s *Scanner) { s.now = now } }

// NewScanner creates a Scanner with the default bounds.
func NewScanner(runner proc.Runner, opts ...Option) *Scanner {
	s := &Scanner{
		runner:   runner,
		goos:     runtime.GOOS,
		cap:      DefaultCap,
		maxDepth: DefaultMaxDepth,
		exclude:  fs.NewExcludeMatcher(nil),
		now:      time.Now,
		homeDir:  os.UserHomeDir,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// techniqueResult is what one discovery technique contributes.
type techniqueResult struct {
	artifacts  []model.HiddenArtifact
	discovered int // true count, including entries dropped by the quota
}

// Scan discovers hidden artifacts under root (the user's home when
// empty). Partial failures never abort the scan: a technique that
// fails contributes zero results and the rest proceed.
func (s *Scanner) Scan(ctx context.Context, root string) model.HiddenScanResult {
	result := model.HiddenScanResult{Timestamp: s.now()}

	if root == "" {
		home, err := s.homeDir()
		if err != nil {
			result.Error = "cannot determine home directory: " + err.Error()
			return result
		}
		root = home
	}
	result.ScanRoot = root

	techniques := []func(ctx context.Context, root string, quota int) techniqueResult{
		s.nativeHiddenQuery,
		s.dotPrefixWalk,
		s.wellKnownPaths,
	}
	quota := s.cap / len(techniques)

	var (
		mu         sync.Mutex
		collected  []model.HiddenArtifact
		discovered int
		wg         sync.WaitGroup
	)

	for _, technique := range techniques {
		wg.Add(1)
		go func(run func(context.Context, string, int) techniqueResult) {
			defer wg.Done()
			tr := run(ctx, root, quota)

			mu.Lock()
			collected = append(collected, tr.artifacts...)
			discovered += tr.discovered
			mu.Unlock()
		}(technique)
	}
	wg.Wait()

	// Single sort-and-truncate pass keeps the output deterministic
	// regardless of technique completion order.
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].SizeBytes > collected[j].SizeBytes
	})
	if len(collected) > s.cap {
		collected = collected[:s.cap]
	}

	result.Artifacts = collected
	result.TotalDiscovered = discovered
	return result
}
