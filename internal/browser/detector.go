// Package browser locates browser profile directories and the
// credential, cookie and history stores inside them. Only file
// metadata is recorded; store contents are never opened.
package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"residue/internal/model"
)

// Detector enumerates browser profiles from the fixed path table.
type Detector struct {
	goos    string
	homeDir func() (string, error)
}

// Option adjusts a Detector.
type Option func(*Detector)

// WithGOOS overrides the platform branch.
func WithGOOS(goos string) Option { return func(d *Detector) { d.goos = goos } }

// WithHomeDir overrides home directory resolution.
func WithHomeDir(fn func() (string, error)) Option {
	return func(d *Detector) { d.homeDir = fn }
}

// NewDetector creates a Detector for the current platform.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		goos:    runtime.GOOS,
		homeDir: os.UserHomeDir,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Scan enumerates profiles for every supported browser family.
// Profiles without a single discoverable artifact are dropped.
// Missing roots and unreadable directories are skipped silently.
func (d *Detector) Scan() model.BrowserProfilesResult {
	home, err := d.homeDir()
	if err != nil {
		return model.BrowserProfilesResult{Error: "cannot determine home directory: " + err.Error()}
	}

	var profiles []model.BrowserProfile
	for _, fam := range families {
		for _, rel := range fam.Roots[d.goos] {
			root := filepath.Join(home, rel)
			profiles = append(profiles, d.scanRoot(fam, root)...)
		}
	}

	return model.BrowserProfilesResult{
		Profiles:   profiles,
		TotalFound: len(profiles),
	}
}

// scanRoot enumerates profile directories under one profile root.
func (d *Detector) scanRoot(fam family, root string) []model.BrowserProfile {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var profiles []model.BrowserProfile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !matchesProfileName(fam, entry.Name()) {
			continue
		}

		profilePath := filepath.Join(root, entry.Name())
		artifacts := probeArtifacts(profilePath)
		if len(artifacts) == 0 {
			continue // a profile with no artifacts is not a profile
		}

		profiles = append(profiles, model.BrowserProfile{
			BrowserFamily: fam.Name,
			ProfileName:   entry.Name(),
			ProfilePath:   profilePath,
			Artifacts:     artifacts,
		})
	}
	return profiles
}

// matchesProfileName applies the per-family profile naming convention.
func matchesProfileName(fam family, name string) bool {
	if fam.FirefoxStyle {
		return strings.Contains(name, ".default")
	}
	return name == "Default" || strings.HasPrefix(name, "Profile ")
}

// probeArtifacts stats each allowlisted filename inside a profile.
func probeArtifacts(profilePath string) []model.BrowserArtifact {
	var artifacts []model.BrowserArtifact
	for name, semanticType := range artifactAllowlist {
		path := filepath.Join(profilePath, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		artifacts = append(artifacts, model.BrowserArtifact{
			Name:         name,
			Path:         path,
			SizeBytes:    info.Size(),
			LastModified: info.ModTime(),
			SemanticType: semanticType,
		})
	}
	// Map iteration order is random; keep output stable.
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Name < artifacts[j].Name })
	return artifacts
}
