// Package scan is the orchestration boundary of residue. Every probe
// is exposed as an independently invocable operation returning a
// result-shaped value; errors degrade to partial results with an Error
// field and never cross the boundary as raw failures. An unexpected
// panic inside a handler is recovered into a zeroed result.
package scan

import (
	"context"
	"fmt"

	"residue/internal/fs"
	"residue/internal/model"
	"residue/internal/risk"
)

// Version is the report format version embedded in every payload.
const Version = "1.0.0"

// Service coordinates the probes, the signer, and report persistence.
type Service struct {
	prober   VolumeProber
	hidden   HiddenScanner
	browsers BrowserDetector
	miner    LogMiner
	signer   Signer
	store    ReportStore
	catalog  Catalog
	tokens   TokenEncoder
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewService creates a Service with the provided dependencies. catalog
// may be nil; report generation then skips metadata recording.
func NewService(prober VolumeProber, hidden HiddenScanner, browsers BrowserDetector, miner LogMiner,
	signer Signer, store ReportStore, catalog Catalog, tokens TokenEncoder,
	logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		prober:   prober,
		hidden:   hidden,
		browsers: browsers,
		miner:    miner,
		signer:   signer,
		store:    store,
		catalog:  catalog,
		tokens:   tokens,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// ListVolumes enumerates mounted volumes. A probe panic yields an
// empty slice; per-volume failures are already absorbed by the prober.
func (s *Service) ListVolumes(ctx context.Context) (volumes []model.Volume) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("volume probe panicked", "panic", r)
			volumes = nil
		}
	}()
	volumes = s.prober.ListVolumes(ctx)
	s.logger.Info("volumes probed", "count", len(volumes))
	return volumes
}

// ScanHidden discovers hidden artifacts under root ("" means the
// user's home directory).
func (s *Service) ScanHidden(ctx context.Context, root string) (result model.HiddenScanResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("hidden scan panicked", "panic", r)
			result = model.HiddenScanResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	result = s.hidden.Scan(ctx, root)
	s.logger.Info("hidden scan finished",
		"root", result.ScanRoot, "listed", len(result.Artifacts), "discovered", result.TotalDiscovered)
	return result
}

// PreviewArtifact reads a bounded, redacting preview of the file at
// path. Binary content is replaced with a redaction marker.
func (s *Service) PreviewArtifact(path string) (preview model.ArtifactPreview) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("preview panicked", "path", path, "panic", r)
			preview = model.ArtifactPreview{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	p, err := fs.ReadPreview(path)
	if err != nil {
		return model.ArtifactPreview{Error: err.Error()}
	}
	return model.ArtifactPreview{
		Content:   p.Content,
		BytesRead: p.BytesRead,
		IsBinary:  p.IsBinary,
	}
}

// ScanBrowserProfiles enumerates browser profiles and their artifact
// metadata.
func (s *Service) ScanBrowserProfiles() (result model.BrowserProfilesResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("browser scan panicked", "panic", r)
			result = model.BrowserProfilesResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	result = s.browsers.Scan()
	s.logger.Info("browser scan finished", "profiles", result.TotalFound)
	return result
}

// ScanEventLogs mines the OS event log for privacy-relevant entries.
// On platforms without a structured event log the result carries an
// explicit unsupported error.
func (s *Service) ScanEventLogs(ctx context.Context) (result model.EventLogsResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event log scan panicked", "panic", r)
			result = model.EventLogsResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	result = s.miner.Scan(ctx)
	s.logger.Info("event log scan finished", "entries", result.TotalEntries, "error", result.Error)
	return result
}

// ComputeRisk probes volumes, swap, and snapshots, then scores the
// data-recoverability risk. When the volume probe yields nothing there
// is no basis for a score and the assessment is UNKNOWN.
func (s *Service) ComputeRisk(ctx context.Context) model.RiskAssessment {
	return s.assessRisk(ctx, s.ListVolumes(ctx))
}

// assessRisk scores a volume set already in hand, so a single probe
// result can feed both a report's volume section and its risk section.
func (s *Service) assessRisk(ctx context.Context, volumes []model.Volume) (assessment model.RiskAssessment) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("risk computation panicked", "panic", r)
			assessment = risk.Unknown(fmt.Sprintf("internal error: %v", r))
		}
	}()

	if len(volumes) == 0 {
		return risk.Unknown("volume probe returned no volumes")
	}

	assessment = risk.Assess(risk.Inputs{
		Volumes:   volumes,
		SwapFile:  s.prober.SwapPresence(ctx),
		Snapshots: s.prober.SnapshotPresence(ctx),
	})
	s.logger.Info("risk assessed", "score", assessment.Score, "tier", assessment.Risk)
	return assessment
}
