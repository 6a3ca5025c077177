package scan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// ExportReport pushes a generated report's artifact pair to vault.
// When encryptor is non-nil and configured, the data file is encrypted
// at rest and stored under its name plus an ".age" suffix; the
// rendered document is always stored as-is. The report must have been
// cataloged by a previous GenerateReport.
func (s *Service) ExportReport(reportID string, vault Vault, encryptor Encryptor) error {
	if s.catalog == nil {
		return fmt.Errorf("no report catalog configured")
	}

	entry, err := s.catalog.GetReport(reportID)
	if err != nil {
		return fmt.Errorf("looking up report: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("report not found: %s", reportID)
	}

	if err := vault.ValidateSetup(); err != nil {
		return fmt.Errorf("validating vault: %w", err)
	}

	if err := s.exportData(entry, vault, encryptor); err != nil {
		return err
	}
	if err := s.exportFile(entry.ReportID, entry.DocumentPath, vault); err != nil {
		return err
	}

	s.logger.Info("report exported", "reportID", reportID)
	return nil
}

// exportData uploads the report data file, encrypting it first when an
// encryptor is available.
func (s *Service) exportData(entry *CatalogEntry, vault Vault, encryptor Encryptor) error {
	if encryptor == nil || !encryptor.IsConfigured() {
		return s.exportFile(entry.ReportID, entry.DataPath, vault)
	}

	f, err := os.Open(entry.DataPath)
	if err != nil {
		return fmt.Errorf("opening report data: %w", err)
	}
	defer f.Close()

	var sealed bytes.Buffer
	if err := encryptor.Encrypt(f, &sealed); err != nil {
		return fmt.Errorf("encrypting report data: %w", err)
	}

	name := filepath.Base(entry.DataPath) + ".age"
	if err := vault.PutReport(entry.ReportID, name, &sealed, int64(sealed.Len())); err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}

// exportFile uploads one artifact file unmodified.
func (s *Service) exportFile(reportID, path string, vault Vault) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	if err := vault.PutReport(reportID, name, f, info.Size()); err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}
