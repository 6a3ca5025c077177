package scan

import (
	"time"

	"residue/internal/model"
)

// Signer signs report payloads and verifies signed reports.
type Signer interface {
	Sign(payload model.ReportPayload) (model.Report, error)
	Verify(r model.Report) model.VerifyReportResult
	PublicKey() string
}

// ReportStore persists signed reports as a data/document file pair and
// loads them back for verification.
type ReportStore interface {
	Write(r model.Report) (dataPath, docPath string, err error)
	Read(reportID string) (model.Report, error)
}

// TokenEncoder produces the short verification token handed to the UI
// for rendering as a scannable image.
type TokenEncoder interface {
	Encode(reportID, signature string) string
}

// CatalogEntry is the persisted metadata of one generated report. Scan
// results themselves are never cataloged; the entry only locates and
// identifies the signed artifact pair.
type CatalogEntry struct {
	ReportID     string
	CreatedAt    time.Time
	DataPath     string
	DocumentPath string
	Signature    string
	PublicKey    string
}

// Catalog records report metadata so reports can be listed and located
// after the generating process has exited.
type Catalog interface {
	RecordReport(e CatalogEntry) error
	GetReport(reportID string) (*CatalogEntry, error)
	ListReports(limit int) ([]CatalogEntry, error)
	Close() error
}
