package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		HostID:     "test-host-abc",
		BaseDir:    "/home/user/.local/share/residue",
		LogDir:     "/home/user/.local/share/residue/log",
		ReportsDir: "/home/user/.local/share/residue/reports",
		Scan: ScanConfig{
			HiddenCap:             150,
			MaxDepth:              2,
			CommandTimeoutSeconds: 10,
			Exclude:               []string{"*.sock", ".cache"},
		},
		Catalog: CatalogConfig{Type: "sqlite", DataDir: "/home/user/.local/share/residue/db"},
		Vaults: []VaultConfig{
			{Type: "filesystem", Name: "local", FSVaultRoot: "/archive/reports"},
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/residue/keys/residue.pub",
			PrivateKeyPath: "/home/user/.local/share/residue/keys/residue.key",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.HostID != original.HostID {
		t.Errorf("HostID = %q, want %q", got.HostID, original.HostID)
	}
	if got.ReportsDir != original.ReportsDir {
		t.Errorf("ReportsDir = %q, want %q", got.ReportsDir, original.ReportsDir)
	}
	if got.Scan.HiddenCap != 150 {
		t.Errorf("Scan.HiddenCap = %d, want 150", got.Scan.HiddenCap)
	}
	if got.Scan.MaxDepth != 2 {
		t.Errorf("Scan.MaxDepth = %d, want 2", got.Scan.MaxDepth)
	}
	if len(got.Scan.Exclude) != 2 {
		t.Fatalf("len(Scan.Exclude) = %d, want 2", len(got.Scan.Exclude))
	}
	if got.Catalog.Type != "sqlite" {
		t.Errorf("Catalog.Type = %q, want %q", got.Catalog.Type, "sqlite")
	}
	if len(got.Vaults) != 1 {
		t.Fatalf("len(Vaults) = %d, want 1", len(got.Vaults))
	}
	if got.Vaults[0].FSVaultRoot != "/archive/reports" {
		t.Errorf("Vault.FSVaultRoot = %q, want %q", got.Vaults[0].FSVaultRoot, "/archive/reports")
	}
	if got.Encryption.PublicKeyPath != original.Encryption.PublicKeyPath {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", got.Encryption.PublicKeyPath, original.Encryption.PublicKeyPath)
	}
}

func TestManager_Read_AppliesDefaults(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("host_id = \"h1\"\nbase_dir = \"/data/residue\"\n")

	m := &Manager{}
	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.Scan.HiddenCap != 200 {
		t.Errorf("Scan.HiddenCap = %d, want default 200", got.Scan.HiddenCap)
	}
	if got.Scan.MaxDepth != 3 {
		t.Errorf("Scan.MaxDepth = %d, want default 3", got.Scan.MaxDepth)
	}
	if got.Scan.CommandTimeoutSeconds != 30 {
		t.Errorf("Scan.CommandTimeoutSeconds = %d, want default 30", got.Scan.CommandTimeoutSeconds)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("host-1", "/data/residue")

	if cfg.HostID != "host-1" {
		t.Errorf("HostID = %q, want %q", cfg.HostID, "host-1")
	}
	if cfg.BaseDir != "/data/residue" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/residue")
	}
	if cfg.LogDir != "/data/residue/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/residue/log")
	}
	if cfg.ReportsDir != "/data/residue/reports" {
		t.Errorf("ReportsDir = %q, want %q", cfg.ReportsDir, "/data/residue/reports")
	}
	if cfg.Encryption.PublicKeyPath != "/data/residue/keys/residue.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/residue/keys/residue.pub")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "residue.toml")
		cfg := NewConfig("h1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "residue.toml")
		cfg := NewConfig("h1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Error("second Init() expected error, got nil")
		}
	})
}
