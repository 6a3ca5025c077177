// Package app is the application layer between the CLI and the scan
// service. It constructs all dependencies from config and manages
// their lifecycle on Close.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"residue/internal/browser"
	"residue/internal/catalog"
	"residue/internal/config"
	"residue/internal/encryption"
	"residue/internal/eventlog"
	"residue/internal/hidden"
	"residue/internal/model"
	"residue/internal/proc"
	"residue/internal/report"
	"residue/internal/scan"
	"residue/internal/vault"
	"residue/internal/volume"
)

// App wires the probes, signer, catalog, and optional export backends
// behind the scan service.
type App struct {
	cfg       *config.Config
	signer    *report.SigningService
	catalog   scan.Catalog
	vault     scan.Vault
	encryptor scan.Encryptor
	service   *scan.Service
	logFile   *os.File
}

// New creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "ListVolumes",
// "GenerateReport") and tags every log line. The caller must call
// Close when done.
func New(cfg *config.Config, operation string) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, operation)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	cat, err := catalog.NewCatalogFromConfig(cfg.Catalog, cfg.HostID)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	signer := report.NewSigningService()
	if err := signer.Init(); err != nil {
		cat.Close()
		logFile.Close()
		return nil, fmt.Errorf("initializing signing service: %w", err)
	}

	var v scan.Vault
	if len(cfg.Vaults) > 0 {
		v, err = vault.NewVaultFromConfig(cfg.Vaults[0])
		if err != nil {
			signer.Shutdown()
			cat.Close()
			logFile.Close()
			return nil, fmt.Errorf("creating vault: %w", err)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		signer.Shutdown()
		cat.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	runner := proc.NewCommandRunner(time.Duration(cfg.Scan.CommandTimeoutSeconds) * time.Second)
	prober := volume.NewProber(runner)
	scanner := hidden.NewScanner(runner,
		hidden.WithCap(cfg.Scan.HiddenCap),
		hidden.WithMaxDepth(cfg.Scan.MaxDepth),
		hidden.WithExclude(cfg.Scan.Exclude),
	)
	detector := browser.NewDetector()
	miner := eventlog.NewMiner(runner)
	writer := report.NewWriter(cfg.ReportsDir, nil)

	svc := scan.NewService(
		prober, scanner, detector, miner,
		signer, writer, cat, report.PrefixTokenEncoder{},
		&slogAdapter{l: logger}, scan.RealClock{}, scan.UUIDGenerator{},
	)

	return &App{
		cfg:       cfg,
		signer:    signer,
		catalog:   cat,
		vault:     v,
		encryptor: enc,
		service:   svc,
		logFile:   logFile,
	}, nil
}

// ListVolumes enumerates mounted volumes.
func (a *App) ListVolumes(ctx context.Context) []model.Volume {
	return a.service.ListVolumes(ctx)
}

// ScanHidden discovers hidden artifacts under root ("" means the
// user's home directory).
func (a *App) ScanHidden(ctx context.Context, root string) model.HiddenScanResult {
	return a.service.ScanHidden(ctx, root)
}

// PreviewArtifact reads a bounded, redacting preview of a file.
func (a *App) PreviewArtifact(path string) model.ArtifactPreview {
	return a.service.PreviewArtifact(path)
}

// ScanBrowserProfiles enumerates browser profiles.
func (a *App) ScanBrowserProfiles() model.BrowserProfilesResult {
	return a.service.ScanBrowserProfiles()
}

// ScanEventLogs mines the OS event log.
func (a *App) ScanEventLogs(ctx context.Context) model.EventLogsResult {
	return a.service.ScanEventLogs(ctx)
}

// ComputeRisk scores the machine's data-recoverability risk.
func (a *App) ComputeRisk(ctx context.Context) model.RiskAssessment {
	return a.service.ComputeRisk(ctx)
}

// GenerateReport runs every probe and produces a signed report pair.
func (a *App) GenerateReport(ctx context.Context) model.GenerateReportResult {
	return a.service.GenerateReport(ctx, a.service.CollectScanData(ctx))
}

// VerifyReportFile verifies the signature of a report file on disk.
func (a *App) VerifyReportFile(path string) model.VerifyReportResult {
	return a.service.VerifyReportFile(path)
}

// VerifyReportByID locates a cataloged report and verifies it.
func (a *App) VerifyReportByID(reportID string) model.VerifyReportResult {
	return a.service.VerifyReportByID(reportID)
}

// History lists the most recently generated reports.
func (a *App) History(limit int) ([]scan.CatalogEntry, error) {
	return a.service.History(limit)
}

// ExportReport pushes a cataloged report's artifact pair to the
// configured vault, encrypting the data file when encryption has been
// set up.
func (a *App) ExportReport(reportID string) error {
	if a.vault == nil {
		return fmt.Errorf("no vault configured")
	}
	return a.service.ExportReport(reportID, a.vault, a.encryptor)
}

// SetupEncryption generates the report-export key pair.
func (a *App) SetupEncryption(passphrase string) error {
	return a.encryptor.Setup(passphrase)
}

// SimulateWipe starts the wipe simulation and returns its event stream.
func (a *App) SimulateWipe(ctx context.Context) <-chan model.WipeProgress {
	return scan.NewWipeSimulation().Run(ctx)
}

// Close shuts down the signing service, the catalog, and the log file.
func (a *App) Close() error {
	var firstErr error

	a.signer.Shutdown()

	if err := a.catalog.Close(); err != nil {
		firstErr = fmt.Errorf("closing catalog: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
