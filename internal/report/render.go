package report

import (
	"fmt"
	"strings"

	"residue/internal/model"
)

// DocumentRenderer turns a signed report into its human-readable
// document form. The writer treats the output as opaque bytes.
type DocumentRenderer interface {
	Render(r model.Report) ([]byte, error)
}

// TokenEncoder produces the short verification token printed alongside
// a generated report. The token's format is the encoder's business.
type TokenEncoder interface {
	Encode(reportID, signature string) string
}

// TextRenderer is the default plain-text document renderer.
type TextRenderer struct{}

var _ DocumentRenderer = (*TextRenderer)(nil)

func (TextRenderer) Render(r model.Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "RESIDUE SCAN REPORT\n")
	fmt.Fprintf(&b, "===================\n\n")
	fmt.Fprintf(&b, "Report ID:  %s\n", r.ReportID)
	fmt.Fprintf(&b, "Generated:  %s\n", r.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Version:    %s\n\n", r.Version)

	fmt.Fprintf(&b, "VOLUMES (%d)\n", len(r.Volumes))
	for _, v := range r.Volumes {
		enc := "cleartext"
		if v.Encryption.Encrypted {
			enc = "encrypted (" + v.Encryption.Mechanism + ")"
		}
		fmt.Fprintf(&b, "  %-12s %s GB total, %s GB free, %s%% used, %s\n",
			v.Identifier, v.TotalGB, v.FreeGB, v.UsagePercent, enc)
	}

	fmt.Fprintf(&b, "\nHIDDEN ARTIFACTS: %d listed, %d discovered (root %s)\n",
		len(r.Hidden.Artifacts), r.Hidden.TotalDiscovered, r.Hidden.ScanRoot)
	if r.Hidden.Error != "" {
		fmt.Fprintf(&b, "  scan error: %s\n", r.Hidden.Error)
	}

	fmt.Fprintf(&b, "\nBROWSER PROFILES: %d\n", len(r.Browsers.Profiles))
	for _, p := range r.Browsers.Profiles {
		fmt.Fprintf(&b, "  %s / %s: %d artifacts\n", p.BrowserFamily, p.ProfileName, len(p.Artifacts))
	}

	fmt.Fprintf(&b, "\nEVENT LOGS: %d entries from %d channels\n",
		r.EventLogs.TotalEntries, len(r.EventLogs.Logs))
	if r.EventLogs.Error != "" {
		fmt.Fprintf(&b, "  %s\n", r.EventLogs.Error)
	}

	fmt.Fprintf(&b, "\nRISK: %d/100 (%s)\n", r.Risk.Score, r.Risk.Risk)
	if f := r.Risk.Factors.SwapFile; f != nil && f.Present {
		fmt.Fprintf(&b, "  swap/pagefile present\n")
	}
	if f := r.Risk.Factors.Snapshots; f != nil && f.Present {
		fmt.Fprintf(&b, "  filesystem snapshots present\n")
	}
	if f := r.Risk.Factors.Encryption; f != nil {
		fmt.Fprintf(&b, "  encryption coverage: %.0f%%\n", f.Coverage)
	}

	fmt.Fprintf(&b, "\nSIGNATURE\n")
	fmt.Fprintf(&b, "  %s\n", r.Signature)
	fmt.Fprintf(&b, "  public key: %s\n", r.PublicKey)

	return []byte(b.String()), nil
}

// PrefixTokenEncoder is the default token encoder: report ID plus the
// first 16 characters of the signature.
type PrefixTokenEncoder struct{}

var _ TokenEncoder = (*PrefixTokenEncoder)(nil)

func (PrefixTokenEncoder) Encode(reportID, signature string) string {
	prefix := signature
	if len(prefix) > 16 {
		prefix = prefix[:16]
	}
	return reportID + ":" + prefix
}
