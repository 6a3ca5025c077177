package hidden

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	residuefs "residue/internal/fs"
	"residue/internal/model"
)

// nativeHiddenQuery asks the OS for files carrying a hidden attribute.
// Only Windows and macOS have such an attribute; elsewhere the
// technique contributes nothing. A failed or timed-out query likewise
// degrades to zero results.
func (s *Scanner) nativeHiddenQuery(ctx context.Context, root string, quota int) techniqueResult {
	var out []byte
	var err error

	switch s.goos {
	case "windows":
		script := fmt.Sprintf(
			"Get-ChildItem -Force -Hidden -Recurse -Depth %d -ErrorAction SilentlyContinue -Path '%s' | Select-Object -ExpandProperty FullName",
			s.maxDepth, root)
		out, err = s.runner.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	case "darwin":
		out, err = s.runner.Run(ctx, "find", root, "-maxdepth", strconv.Itoa(s.maxDepth), "-flags", "+hidden")
	default:
		return techniqueResult{}
	}
	if err != nil {
		return techniqueResult{}
	}

	var tr techniqueResult
	for _, line := range strings.Split(string(out), "\n") {
		path := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if path == "" {
			continue
		}
		info, lerr := os.Lstat(path)
		if lerr != nil {
			continue // vanished or inaccessible: skip silently
		}

		tr.discovered++
		if len(tr.artifacts) >= quota {
			continue
		}

		category := model.CategoryHidden
		if info.IsDir() {
			category = model.CategoryHiddenDirectory
		}
		tr.artifacts = append(tr.artifacts, s.newArtifact(path, info, "os-hidden", category))
	}
	return tr
}

// dotPrefixWalk finds dot-prefixed entries with a bounded recursive
// walk below the root.
func (s *Scanner) dotPrefixWalk(ctx context.Context, root string, quota int) techniqueResult {
	var tr techniqueResult

	_ = residuefs.WalkBounded(root, s.maxDepth, func(e residuefs.WalkEntry) bool {
		if ctx.Err() != nil {
			return false
		}

		name := filepath.Base(e.Path)
		if !strings.HasPrefix(name, ".") {
			return true
		}

		rel, err := filepath.Rel(root, e.Path)
		if err == nil && s.exclude.Match(rel) {
			return true
		}

		tr.discovered++
		if len(tr.artifacts) >= quota {
			// Keep walking so the discovered count stays truthful.
			return true
		}

		category := model.CategoryDotfile
		if e.Info.IsDir() {
			category = model.CategoryHiddenDirectory
		}
		tr.artifacts = append(tr.artifacts, s.newArtifact(e.Path, e.Info, "dot-prefix", category))
		return true
	})

	return tr
}

// wellKnownPaths probes the fixed per-OS table of sensitive locations.
func (s *Scanner) wellKnownPaths(ctx context.Context, _ string, quota int) techniqueResult {
	home, err := s.homeDir()
	if err != nil {
		return techniqueResult{}
	}

	var tr techniqueResult
	for _, kp := range knownSensitivePaths(s.goos, home) {
		if ctx.Err() != nil {
			break
		}
		info, lerr := os.Lstat(kp.path)
		if lerr != nil {
			continue
		}

		tr.discovered++
		if len(tr.artifacts) >= quota {
			continue
		}
		tr.artifacts = append(tr.artifacts, s.newArtifact(kp.path, info, "well-known", kp.category))
	}
	return tr
}

// newArtifact builds an immutable HiddenArtifact from stat info.
// Directories contribute size 0.
func (s *Scanner) newArtifact(path string, info fs.FileInfo, tag string, category model.ArtifactCategory) model.HiddenArtifact {
	size := info.Size()
	if info.IsDir() {
		size = 0
	}
	return model.HiddenArtifact{
		Path:         path,
		DisplayName:  filepath.Base(path),
		SizeBytes:    size,
		LastModified: info.ModTime(),
		AttributeTag: tag,
		Category:     category,
		Platform:     s.goos,
		IsDirectory:  info.IsDir(),
	}
}
