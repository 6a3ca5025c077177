package scan_test

import (
	"context"
	"os"
	"testing"

	"residue/internal/model"
	"residue/internal/scan"
)

func TestCollectScanDataProbesVolumesOnce(t *testing.T) {
	prober := &stubProber{
		volumes:   sampleVolumes(),
		swap:      model.RiskFactor{Present: true},
		snapshots: model.RiskFactor{Present: true},
	}
	svc, _, _ := testService(t, prober)

	data := svc.CollectScanData(context.Background())

	if prober.listCalls != 1 {
		t.Fatalf("volume probe ran %d times, want 1", prober.listCalls)
	}
	if len(data.Volumes) != 1 {
		t.Fatalf("Volumes = %+v, want the single probed volume", data.Volumes)
	}
	// The risk section is scored from the same probe result: 50 base
	// + 20 swap + 25 snapshots + 15 free space (30% free).
	if data.Risk.Score != 100 || data.Risk.Risk != model.RiskHigh {
		t.Errorf("Risk = %d/%s, want 100/HIGH from the probed volume set", data.Risk.Score, data.Risk.Risk)
	}
}

func TestGenerateAndVerifyReport(t *testing.T) {
	svc, catalog, _ := testService(t, &stubProber{volumes: sampleVolumes()})
	ctx := context.Background()

	data := svc.CollectScanData(ctx)
	result := svc.GenerateReport(ctx, data)
	if !result.Success {
		t.Fatalf("GenerateReport() failed: %s", result.Error)
	}
	if result.ReportID != "id-1" {
		t.Errorf("ReportID = %q, want the generator's first ID", result.ReportID)
	}
	if result.Signature == "" {
		t.Error("report result missing signature")
	}

	t.Run("both artifacts exist", func(t *testing.T) {
		for _, path := range []string{result.DataPath, result.DocumentPath} {
			if _, err := os.Stat(path); err != nil {
				t.Errorf("artifact %s missing: %v", path, err)
			}
		}
	})

	t.Run("report is cataloged", func(t *testing.T) {
		entry, err := catalog.GetReport(result.ReportID)
		if err != nil || entry == nil {
			t.Fatalf("GetReport() = %v, %v; want a catalog entry", entry, err)
		}
		if entry.DataPath != result.DataPath {
			t.Errorf("cataloged data path = %q, want %q", entry.DataPath, result.DataPath)
		}
	})

	t.Run("verify by file path", func(t *testing.T) {
		v := svc.VerifyReportFile(result.DataPath)
		if !v.Valid {
			t.Fatalf("VerifyReportFile() invalid: %s", v.Error)
		}
		if !v.PublicKeyMatch {
			t.Error("verification against the signing process should match the active key")
		}
		if v.ReportID != result.ReportID {
			t.Errorf("verified report ID = %q, want %q", v.ReportID, result.ReportID)
		}
	})

	t.Run("verify by catalog ID", func(t *testing.T) {
		v := svc.VerifyReportByID(result.ReportID)
		if !v.Valid {
			t.Fatalf("VerifyReportByID() invalid: %s", v.Error)
		}
	})

	t.Run("tampered report fails verification", func(t *testing.T) {
		raw, err := os.ReadFile(result.DataPath)
		if err != nil {
			t.Fatal(err)
		}
		tampered := append([]byte(nil), raw...)
		for i := range tampered {
			// Flip the risk score digit inside the payload.
			if i+8 < len(tampered) && string(tampered[i:i+8]) == `"score":` {
				tampered[i+8] ^= 0x01
				break
			}
		}
		path := result.DataPath + ".tampered"
		if err := os.WriteFile(path, tampered, 0600); err != nil {
			t.Fatal(err)
		}

		v := svc.VerifyReportFile(path)
		if v.Valid {
			t.Fatal("VerifyReportFile() accepted a tampered payload")
		}
	})
}

func TestVerifyReportFileErrors(t *testing.T) {
	svc, _, _ := testService(t, &stubProber{})

	t.Run("missing file", func(t *testing.T) {
		v := svc.VerifyReportFile("/nonexistent/report.json")
		if v.Valid || v.Error == "" {
			t.Fatalf("VerifyReportFile() = %+v, want invalid with error", v)
		}
	})

	t.Run("unknown report ID", func(t *testing.T) {
		v := svc.VerifyReportByID("no-such-id")
		if v.Valid || v.Error == "" {
			t.Fatalf("VerifyReportByID() = %+v, want invalid with error", v)
		}
	})
}

func TestHistory(t *testing.T) {
	svc, _, _ := testService(t, &stubProber{volumes: sampleVolumes()})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if r := svc.GenerateReport(ctx, scan.ScanData{Risk: model.RiskAssessment{Risk: model.RiskLow}}); !r.Success {
			t.Fatalf("GenerateReport() failed: %s", r.Error)
		}
	}

	entries, err := svc.History(2)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("History(2) returned %d entries", len(entries))
	}
}
