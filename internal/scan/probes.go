package scan

import (
	"context"

	"residue/internal/model"
)

// VolumeProber enumerates storage volumes and the machine-level risk
// factors derived from them.
type VolumeProber interface {
	ListVolumes(ctx context.Context) []model.Volume
	SwapPresence(ctx context.Context) model.RiskFactor
	SnapshotPresence(ctx context.Context) model.RiskFactor
}

// HiddenScanner discovers hidden and sensitive filesystem artifacts
// under a scan root ("" means the user's home directory).
type HiddenScanner interface {
	Scan(ctx context.Context, root string) model.HiddenScanResult
}

// BrowserDetector enumerates browser profiles and their artifact
// metadata.
type BrowserDetector interface {
	Scan() model.BrowserProfilesResult
}

// LogMiner queries the OS event log subsystem for privacy-relevant
// entries.
type LogMiner interface {
	Scan(ctx context.Context) model.EventLogsResult
}
