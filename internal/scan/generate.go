package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"residue/internal/model"
)

// ScanData is the union of probe outputs a report is generated from.
// Callers may run the probes themselves or use CollectScanData.
type ScanData struct {
	Volumes   []model.Volume
	Hidden    model.HiddenScanResult
	Browsers  model.BrowserProfilesResult
	EventLogs model.EventLogsResult
	Risk      model.RiskAssessment
}

// CollectScanData runs every probe and assembles the results. Each
// probe degrades independently; the returned data is always complete
// in shape. Volumes are probed once, and the same set feeds the risk
// assessment, so the two report sections can never disagree about the
// machine's volumes.
func (s *Service) CollectScanData(ctx context.Context) ScanData {
	volumes := s.ListVolumes(ctx)
	return ScanData{
		Volumes:   volumes,
		Hidden:    s.ScanHidden(ctx, ""),
		Browsers:  s.ScanBrowserProfiles(),
		EventLogs: s.ScanEventLogs(ctx),
		Risk:      s.assessRisk(ctx, volumes),
	}
}

// GenerateReport assigns a fresh report ID and timestamp, signs the
// canonical payload, and persists the data/document pair. The pair is
// written atomically: a failure before both files land marks the
// generation failed. Catalog recording is best-effort; a report that
// exists on disk is not discarded because its metadata row failed.
func (s *Service) GenerateReport(ctx context.Context, data ScanData) (result model.GenerateReportResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("report generation panicked", "panic", r)
			result = model.GenerateReportResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	payload := model.ReportPayload{
		ReportID:  s.idgen.New(),
		Timestamp: s.clock.Now().UTC(),
		Version:   Version,
		Volumes:   data.Volumes,
		Hidden:    data.Hidden,
		Browsers:  data.Browsers,
		EventLogs: data.EventLogs,
		Risk:      data.Risk,
	}

	signed, err := s.signer.Sign(payload)
	if err != nil {
		return model.GenerateReportResult{Error: fmt.Sprintf("signing report: %v", err)}
	}

	dataPath, docPath, err := s.store.Write(signed)
	if err != nil {
		return model.GenerateReportResult{Error: fmt.Sprintf("writing report: %v", err)}
	}

	token := s.tokens.Encode(signed.ReportID, signed.Signature)
	s.logger.Info("report generated",
		"reportID", signed.ReportID, "dataPath", dataPath, "token", token)

	if s.catalog != nil {
		entry := CatalogEntry{
			ReportID:     signed.ReportID,
			CreatedAt:    signed.Timestamp,
			DataPath:     dataPath,
			DocumentPath: docPath,
			Signature:    signed.Signature,
			PublicKey:    signed.PublicKey,
		}
		if err := s.catalog.RecordReport(entry); err != nil {
			s.logger.Warn("cataloging report failed", "reportID", signed.ReportID, "error", err)
		}
	}

	return model.GenerateReportResult{
		Success:      true,
		ReportID:     signed.ReportID,
		DocumentPath: docPath,
		DataPath:     dataPath,
		Signature:    signed.Signature,
	}
}

// VerifyReportFile loads a persisted report from path and checks its
// signature against the embedded public key. PublicKeyMatch reports
// whether that key is also the active process key.
func (s *Service) VerifyReportFile(path string) (result model.VerifyReportResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("report verification panicked", "path", path, "panic", r)
			result = model.VerifyReportResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	raw, err := os.ReadFile(path)
	if err != nil {
		return model.VerifyReportResult{Error: fmt.Sprintf("reading report: %v", err)}
	}

	var r model.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return model.VerifyReportResult{Error: fmt.Sprintf("parsing report: %v", err)}
	}

	result = s.signer.Verify(r)
	s.logger.Info("report verified",
		"reportID", result.ReportID, "valid", result.Valid, "keyMatch", result.PublicKeyMatch)
	return result
}

// VerifyReportByID locates a cataloged report by ID and verifies its
// data file.
func (s *Service) VerifyReportByID(reportID string) model.VerifyReportResult {
	if s.catalog == nil {
		return model.VerifyReportResult{Error: "no report catalog configured"}
	}
	entry, err := s.catalog.GetReport(reportID)
	if err != nil {
		return model.VerifyReportResult{Error: fmt.Sprintf("looking up report: %v", err)}
	}
	if entry == nil {
		return model.VerifyReportResult{Error: fmt.Sprintf("report not found: %s", reportID)}
	}
	return s.VerifyReportFile(entry.DataPath)
}

// History lists the most recently generated reports.
func (s *Service) History(limit int) ([]CatalogEntry, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("no report catalog configured")
	}
	return s.catalog.ListReports(limit)
}
