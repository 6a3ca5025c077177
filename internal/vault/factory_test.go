package vault

import (
	"testing"

	"residue/internal/config"
)

func TestNewVaultFromConfig(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		v, err := NewVaultFromConfig(config.VaultConfig{Type: "memory", Name: "m"})
		if err != nil {
			t.Fatalf("NewVaultFromConfig() error = %v", err)
		}
		if _, ok := v.(*MemoryVault); !ok {
			t.Errorf("NewVaultFromConfig() = %T, want *MemoryVault", v)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		v, err := NewVaultFromConfig(config.VaultConfig{
			Type:        "filesystem",
			Name:        "fs",
			FSVaultRoot: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("NewVaultFromConfig() error = %v", err)
		}
		if _, ok := v.(*FileSystemVault); !ok {
			t.Errorf("NewVaultFromConfig() = %T, want *FileSystemVault", v)
		}
	})

	t.Run("filesystem without root", func(t *testing.T) {
		if _, err := NewVaultFromConfig(config.VaultConfig{Type: "filesystem"}); err == nil {
			t.Fatal("expected error for missing fs_vault_root")
		}
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		if _, err := NewVaultFromConfig(config.VaultConfig{Type: "s3", S3Region: "eu-west-1"}); err == nil {
			t.Fatal("expected error for missing s3_bucket")
		}
	})

	t.Run("s3 without region", func(t *testing.T) {
		if _, err := NewVaultFromConfig(config.VaultConfig{Type: "s3", S3Bucket: "b"}); err == nil {
			t.Fatal("expected error for missing s3_region")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewVaultFromConfig(config.VaultConfig{Type: "ftp"}); err == nil {
			t.Fatal("expected error for unknown vault type")
		}
	})
}
