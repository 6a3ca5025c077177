package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"residue/internal/model"
	"residue/internal/testutil"
)

func samplePayload() model.ReportPayload {
	clock := testutil.NewStubClock()
	return model.ReportPayload{
		ReportID:  "id-1",
		Timestamp: clock.Now(),
		Version:   "1.0.0",
		Volumes: []model.Volume{
			{
				Identifier: "/",
				MountPath:  "/",
				Kind:       model.VolumeKindMount,
				TotalBytes: 1 << 40,
				FreeBytes:  1 << 38,
				Encryption: model.EncryptionInfo{Encrypted: true, Mechanism: "LUKS"},
			},
		},
		Hidden: model.HiddenScanResult{
			ScanRoot:        "/home/user",
			TotalDiscovered: 12,
		},
		Risk: model.RiskAssessment{Score: 35, Risk: model.RiskLow},
	}
}

func TestSignAndVerify(t *testing.T) {
	svc := NewSigningService()
	if err := svc.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer svc.Shutdown()

	signed, err := svc.Sign(samplePayload())
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	if signed.Signature == "" || signed.PublicKey == "" {
		t.Fatal("signed report missing signature or public key")
	}
	if signed.PublicKey != svc.PublicKey() {
		t.Error("embedded public key differs from service key")
	}

	result := svc.Verify(signed)
	if result.Error != "" {
		t.Fatalf("Verify() error = %q", result.Error)
	}
	if !result.Valid {
		t.Error("Valid = false for untampered report")
	}
	if !result.PublicKeyMatch {
		t.Error("PublicKeyMatch = false for same-process report")
	}
	if result.ReportID != "id-1" {
		t.Errorf("ReportID = %q", result.ReportID)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	svc := NewSigningService()
	if err := svc.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer svc.Shutdown()

	signed, err := svc.Sign(samplePayload())
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}

	tampered := signed
	tampered.Risk.Score = 95
	tampered.Risk.Risk = model.RiskHigh

	result := svc.Verify(tampered)
	if result.Valid {
		t.Error("Valid = true for tampered payload")
	}
}

func TestVerifyOtherProcessKey(t *testing.T) {
	signer := NewSigningService()
	if err := signer.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	signed, err := signer.Sign(samplePayload())
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	signer.Shutdown()

	verifier := NewSigningService()
	if err := verifier.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer verifier.Shutdown()

	result := verifier.Verify(signed)
	if !result.Valid {
		t.Error("Valid = false; embedded key should still verify")
	}
	if result.PublicKeyMatch {
		t.Error("PublicKeyMatch = true across processes")
	}
}

func TestSignBeforeInit(t *testing.T) {
	svc := NewSigningService()
	if _, err := svc.Sign(samplePayload()); err == nil {
		t.Error("Sign() before Init() succeeded")
	}
}

func TestVerifyMalformedFields(t *testing.T) {
	svc := NewSigningService()
	if err := svc.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer svc.Shutdown()

	signed, err := svc.Sign(samplePayload())
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}

	t.Run("bad public key encoding", func(t *testing.T) {
		bad := signed
		bad.PublicKey = "not base64!!!"
		if result := svc.Verify(bad); result.Error == "" || result.Valid {
			t.Errorf("Verify() = %+v, want error and invalid", result)
		}
	})

	t.Run("wrong key length", func(t *testing.T) {
		bad := signed
		bad.PublicKey = "c2hvcnQ="
		if result := svc.Verify(bad); result.Error == "" || result.Valid {
			t.Errorf("Verify() = %+v, want error and invalid", result)
		}
	})

	t.Run("bad signature encoding", func(t *testing.T) {
		bad := signed
		bad.Signature = "***"
		if result := svc.Verify(bad); result.Error == "" || result.Valid {
			t.Errorf("Verify() = %+v, want error and invalid", result)
		}
	})
}

func TestCanonicalPayloadDeterministic(t *testing.T) {
	p := samplePayload()
	first, err := CanonicalPayload(p)
	if err != nil {
		t.Fatalf("CanonicalPayload() failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := CanonicalPayload(p)
		if err != nil {
			t.Fatalf("CanonicalPayload() failed: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("canonical form differs between runs for equal payloads")
		}
	}
	if bytes.Contains(first, []byte("signature")) || bytes.Contains(first, []byte("publicKey")) {
		t.Error("canonical form contains signature fields")
	}
}

func TestWriterPair(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	svc := NewSigningService()
	if err := svc.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer svc.Shutdown()
	signed, err := svc.Sign(samplePayload())
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}

	dataPath, docPath, err := w.Write(signed)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if filepath.Base(dataPath) != "scan-report-id-1.json" {
		t.Errorf("data file = %q", dataPath)
	}
	if filepath.Base(docPath) != "scan-report-id-1.txt" {
		t.Errorf("document file = %q", docPath)
	}

	doc, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	if !strings.Contains(string(doc), "id-1") || !strings.Contains(string(doc), signed.Signature) {
		t.Error("document missing report ID or signature")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("reports dir has %d entries, want 2 (no stray temp files)", len(entries))
	}

	loaded, err := w.Read("id-1")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if result := svc.Verify(loaded); !result.Valid {
		t.Error("report no longer verifies after the write/read round trip")
	}
}

func TestWriterReadMissing(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	if _, err := w.Read("nope"); err == nil {
		t.Error("Read() of missing report succeeded")
	}
}

func TestPrefixTokenEncoder(t *testing.T) {
	enc := PrefixTokenEncoder{}
	got := enc.Encode("id-7", "AAAABBBBCCCCDDDDEEEE")
	if got != "id-7:AAAABBBBCCCCDDDD" {
		t.Errorf("Encode() = %q", got)
	}
	if got := enc.Encode("id-7", "shrt"); got != "id-7:shrt" {
		t.Errorf("Encode() short signature = %q", got)
	}
}
