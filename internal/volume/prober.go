// Package volume enumerates mounted storage volumes with capacity and
// encryption status. Probing is tolerant: a volume that cannot be read
// is skipped and the rest continue; a failed encryption query degrades
// to "Unknown" rather than dropping the volume.
package volume

import (
	"context"
	"os"
	"runtime"

	"residue/internal/model"
	"residue/internal/proc"
)

// CapacityFunc reports total and free bytes for a filesystem path.
type CapacityFunc func(path string) (total, free uint64, err error)

// Prober enumerates volumes for the current platform.
type Prober struct {
	runner     proc.Runner
	goos       string
	capacity   CapacityFunc
	mountsPath string
}

// Option adjusts a Prober, primarily for tests.
type Option func(*Prober)

// WithGOOS overrides the platform branch.
func WithGOOS(goos string) Option { return func(p *Prober) { p.goos = goos } }

// WithCapacity overrides the filesystem-statistics call.
func WithCapacity(fn CapacityFunc) Option { return func(p *Prober) { p.capacity = fn } }

// WithMountsPath overrides the mount table location (Linux).
func WithMountsPath(path string) Option { return func(p *Prober) { p.mountsPath = path } }

// NewProber creates a Prober using the real OS facilities.
func NewProber(runner proc.Runner, opts ...Option) *Prober {
	p := &Prober{
		runner:     runner,
		goos:       runtime.GOOS,
		capacity:   osCapacity,
		mountsPath: "/proc/mounts",
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ListVolumes enumerates mounted volumes. It never fails: per-volume
// errors skip that volume, and a total failure yields an empty slice.
// Results are computed fresh on every call.
func (p *Prober) ListVolumes(ctx context.Context) []model.Volume {
	switch p.goos {
	case "windows":
		return p.listDriveLetters(ctx)
	case "linux":
		return p.listMounts(ctx)
	default:
		return p.listRoot(ctx)
	}
}

// listDriveLetters probes each of the 26 possible drive letters.
func (p *Prober) listDriveLetters(ctx context.Context) []model.Volume {
	volumes := make([]model.Volume, 0, 4)

	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err != nil {
			continue
		}

		total, free, err := p.capacity(root)
		if err != nil {
			continue
		}

		v := model.Volume{
			Identifier: string(letter) + ":",
			MountPath:  root,
			Kind:       model.VolumeKindDrive,
			Encryption: p.bitLockerStatus(ctx, string(letter)+":"),
		}
		v.SetCapacity(total, free)
		volumes = append(volumes, v)
	}

	return volumes
}

// listMounts reads the live mount table and keeps block-device-backed
// entries only.
func (p *Prober) listMounts(ctx context.Context) []model.Volume {
	data, err := os.ReadFile(p.mountsPath)
	if err != nil {
		return nil
	}

	volumes := make([]model.Volume, 0, 4)
	for _, m := range parseMountTable(data) {
		total, free, err := p.capacity(m.MountPoint)
		if err != nil {
			continue
		}

		v := model.Volume{
			Identifier: m.MountPoint,
			MountPath:  m.MountPoint,
			DeviceNode: m.Device,
			Kind:       model.VolumeKindMount,
			Encryption: p.luksStatus(ctx, m.Device),
		}
		v.SetCapacity(total, free)
		volumes = append(volumes, v)
	}

	return volumes
}

// listRoot is the macOS / fallback branch: a single root volume.
func (p *Prober) listRoot(ctx context.Context) []model.Volume {
	total, free, err := p.capacity("/")
	if err != nil {
		return nil
	}

	v := model.Volume{
		Identifier: "/",
		MountPath:  "/",
		Kind:       model.VolumeKindMount,
		Encryption: p.fileVaultStatus(ctx),
	}
	v.SetCapacity(total, free)
	return []model.Volume{v}
}
