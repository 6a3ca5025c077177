package scan_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"residue/internal/scan"
)

// fakeVault records uploaded report artifacts in memory.
type fakeVault struct {
	items       map[string][]byte
	validateErr error
}

func newFakeVault() *fakeVault {
	return &fakeVault{items: make(map[string][]byte)}
}

func (v *fakeVault) PutReport(reportID, name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}
	v.items[reportID+"/"+name] = data
	return nil
}

func (v *fakeVault) GetReport(reportID, name string, w io.Writer) error {
	data, ok := v.items[reportID+"/"+name]
	if !ok {
		return fmt.Errorf("not found: %s/%s", reportID, name)
	}
	_, err := w.Write(data)
	return err
}

func (v *fakeVault) ValidateSetup() error { return v.validateErr }

// rotEncryptor is a trivial scan.Encryptor for export tests.
type rotEncryptor struct{ configured bool }

func (e *rotEncryptor) Setup(string) error { return nil }
func (e *rotEncryptor) IsConfigured() bool { return e.configured }

func (e *rotEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for i := range data {
		data[i] ^= 0x5a
	}
	_, err = w.Write(data)
	return err
}

func (e *rotEncryptor) Unlock(string) (scan.DecryptionContext, error) {
	return rotContext{}, nil
}

type rotContext struct{}

func (rotContext) Decrypt(r io.Reader, w io.Writer) error {
	return (&rotEncryptor{}).Encrypt(r, w)
}

func TestExportReport(t *testing.T) {
	svc, _, _ := testService(t, &stubProber{volumes: sampleVolumes()})
	ctx := context.Background()

	result := svc.GenerateReport(ctx, svc.CollectScanData(ctx))
	if !result.Success {
		t.Fatalf("GenerateReport() failed: %s", result.Error)
	}

	t.Run("plain export pushes both artifacts", func(t *testing.T) {
		vault := newFakeVault()
		if err := svc.ExportReport(result.ReportID, vault, nil); err != nil {
			t.Fatalf("ExportReport() error = %v", err)
		}

		dataKey := result.ReportID + "/scan-report-" + result.ReportID + ".json"
		docKey := result.ReportID + "/scan-report-" + result.ReportID + ".txt"
		if _, ok := vault.items[dataKey]; !ok {
			t.Errorf("vault missing data artifact %s", dataKey)
		}
		if _, ok := vault.items[docKey]; !ok {
			t.Errorf("vault missing document artifact %s", docKey)
		}
	})

	t.Run("encrypted export seals the data file", func(t *testing.T) {
		vault := newFakeVault()
		enc := &rotEncryptor{configured: true}
		if err := svc.ExportReport(result.ReportID, vault, enc); err != nil {
			t.Fatalf("ExportReport() error = %v", err)
		}

		sealedKey := result.ReportID + "/scan-report-" + result.ReportID + ".json.age"
		sealed, ok := vault.items[sealedKey]
		if !ok {
			t.Fatalf("vault missing sealed artifact %s", sealedKey)
		}
		if bytes.Contains(sealed, []byte("reportId")) {
			t.Error("sealed data still contains plaintext JSON")
		}

		var restored bytes.Buffer
		if err := (rotContext{}).Decrypt(bytes.NewReader(sealed), &restored); err != nil {
			t.Fatalf("decrypting sealed data: %v", err)
		}
		if !bytes.Contains(restored.Bytes(), []byte(result.ReportID)) {
			t.Error("round-tripped data does not contain the report ID")
		}
	})

	t.Run("unreachable vault fails the export", func(t *testing.T) {
		vault := newFakeVault()
		vault.validateErr = fmt.Errorf("bucket unreachable")
		err := svc.ExportReport(result.ReportID, vault, nil)
		if err == nil || !strings.Contains(err.Error(), "bucket unreachable") {
			t.Fatalf("ExportReport() error = %v, want validation failure", err)
		}
	})

	t.Run("unknown report", func(t *testing.T) {
		if err := svc.ExportReport("no-such-id", newFakeVault(), nil); err == nil {
			t.Fatal("ExportReport() on unknown ID should fail")
		}
	})
}
