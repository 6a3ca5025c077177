package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"residue/internal/model"
)

// Writer persists a signed report as a data/document pair in the
// reports directory. Both files land or neither does.
type Writer struct {
	dir      string
	renderer DocumentRenderer
}

// NewWriter creates a Writer targeting dir. A nil renderer falls back
// to the plain-text renderer.
func NewWriter(dir string, renderer DocumentRenderer) *Writer {
	if renderer == nil {
		renderer = TextRenderer{}
	}
	return &Writer{dir: dir, renderer: renderer}
}

// Write stores scan-report-<id>.json and scan-report-<id>.txt. Files
// are staged under temporary names and renamed into place only after
// both have been written; a failure at any point removes the stages.
func (w *Writer) Write(r model.Report) (dataPath, docPath string, err error) {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return "", "", fmt.Errorf("creating reports directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("serializing report: %w", err)
	}
	doc, err := w.renderer.Render(r)
	if err != nil {
		return "", "", fmt.Errorf("rendering document: %w", err)
	}

	dataPath = filepath.Join(w.dir, fmt.Sprintf("scan-report-%s.json", r.ReportID))
	docPath = filepath.Join(w.dir, fmt.Sprintf("scan-report-%s.txt", r.ReportID))

	dataTmp := dataPath + ".tmp"
	docTmp := docPath + ".tmp"
	cleanup := func() {
		os.Remove(dataTmp)
		os.Remove(docTmp)
	}

	if err := os.WriteFile(dataTmp, data, 0600); err != nil {
		cleanup()
		return "", "", fmt.Errorf("writing report data: %w", err)
	}
	if err := os.WriteFile(docTmp, doc, 0600); err != nil {
		cleanup()
		return "", "", fmt.Errorf("writing report document: %w", err)
	}

	if err := os.Rename(dataTmp, dataPath); err != nil {
		cleanup()
		return "", "", fmt.Errorf("finalizing report data: %w", err)
	}
	if err := os.Rename(docTmp, docPath); err != nil {
		os.Remove(dataPath)
		cleanup()
		return "", "", fmt.Errorf("finalizing report document: %w", err)
	}

	return dataPath, docPath, nil
}

// Read loads a previously written report data file.
func (w *Writer) Read(reportID string) (model.Report, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("scan-report-%s.json", reportID))
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Report{}, fmt.Errorf("reading report %s: %w", reportID, err)
	}

	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Report{}, fmt.Errorf("parsing report %s: %w", reportID, err)
	}
	return r, nil
}
