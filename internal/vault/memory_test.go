package vault

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryVault_PutAndGetReport(t *testing.T) {
	v := NewMemoryVault("test")

	data := `{"reportId":"r1"}`
	if err := v.PutReport("r1", "scan-report-r1.json", strings.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("PutReport() error = %v", err)
	}

	var out bytes.Buffer
	if err := v.GetReport("r1", "scan-report-r1.json", &out); err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if out.String() != data {
		t.Errorf("GetReport() = %q, want %q", out.String(), data)
	}
}

func TestMemoryVault_PutReportSizeMismatch(t *testing.T) {
	v := NewMemoryVault("test")

	err := v.PutReport("r1", "doc.txt", strings.NewReader("short"), 100)
	if err == nil {
		t.Fatal("PutReport() with wrong size should fail")
	}
}

func TestMemoryVault_PutReportOverwrites(t *testing.T) {
	v := NewMemoryVault("test")

	if err := v.PutReport("r1", "doc.txt", strings.NewReader("old"), 3); err != nil {
		t.Fatalf("first PutReport() error = %v", err)
	}
	if err := v.PutReport("r1", "doc.txt", strings.NewReader("new"), 3); err != nil {
		t.Fatalf("second PutReport() error = %v", err)
	}

	var out bytes.Buffer
	if err := v.GetReport("r1", "doc.txt", &out); err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if out.String() != "new" {
		t.Errorf("GetReport() = %q, want the overwritten content", out.String())
	}
}

func TestMemoryVault_GetReportNotFound(t *testing.T) {
	v := NewMemoryVault("test")

	var out bytes.Buffer
	if err := v.GetReport("missing", "doc.txt", &out); err == nil {
		t.Fatal("GetReport() on missing artifact should fail")
	}
}

func TestMemoryVault_ValidateSetup(t *testing.T) {
	if err := NewMemoryVault("test").ValidateSetup(); err != nil {
		t.Fatalf("ValidateSetup() error = %v", err)
	}
}
