package volume

import (
	"context"
	"strings"

	"residue/internal/model"
)

// unknownEncryption is the degraded result when an encryption query
// fails or times out. The volume is still reported.
var unknownEncryption = model.EncryptionInfo{Encrypted: false, Mechanism: "Unknown"}

// bitLockerStatus queries manage-bde for a drive letter ("C:").
func (p *Prober) bitLockerStatus(ctx context.Context, drive string) model.EncryptionInfo {
	out, err := p.runner.Run(ctx, "manage-bde", "-status", drive)
	if err != nil {
		return unknownEncryption
	}
	return parseBitLockerStatus(out)
}

// parseBitLockerStatus reads manage-bde -status output. The line
// "Protection Status: Protection On" marks an encrypted volume.
func parseBitLockerStatus(out []byte) model.EncryptionInfo {
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Protection Status:") {
			continue
		}
		if strings.Contains(line, "Protection On") {
			return model.EncryptionInfo{Encrypted: true, Mechanism: "BitLocker"}
		}
		return model.EncryptionInfo{Encrypted: false, Mechanism: "BitLocker"}
	}
	return unknownEncryption
}

// luksStatus queries lsblk for a block device's encryption marker.
func (p *Prober) luksStatus(ctx context.Context, device string) model.EncryptionInfo {
	out, err := p.runner.Run(ctx, "lsblk", "-no", "TYPE,FSTYPE", device)
	if err != nil {
		return unknownEncryption
	}
	return parseLsblkEncryption(out)
}

// parseLsblkEncryption reads `lsblk -no TYPE,FSTYPE <dev>` output.
// A "crypt" device type or a crypto_LUKS filesystem marks encryption.
func parseLsblkEncryption(out []byte) model.EncryptionInfo {
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "crypt" {
			return model.EncryptionInfo{Encrypted: true, Mechanism: "LUKS"}
		}
		for _, f := range fields[1:] {
			if strings.EqualFold(f, "crypto_LUKS") {
				return model.EncryptionInfo{Encrypted: true, Mechanism: "LUKS"}
			}
		}
	}
	return model.EncryptionInfo{Encrypted: false, Mechanism: ""}
}

// fileVaultStatus queries fdesetup for full-disk-encryption state.
func (p *Prober) fileVaultStatus(ctx context.Context) model.EncryptionInfo {
	out, err := p.runner.Run(ctx, "fdesetup", "status")
	if err != nil {
		return unknownEncryption
	}
	return parseFDESetupStatus(out)
}

// parseFDESetupStatus reads `fdesetup status` output
// ("FileVault is On." / "FileVault is Off.").
func parseFDESetupStatus(out []byte) model.EncryptionInfo {
	s := string(out)
	switch {
	case strings.Contains(s, "FileVault is On"):
		return model.EncryptionInfo{Encrypted: true, Mechanism: "FileVault"}
	case strings.Contains(s, "FileVault is Off"):
		return model.EncryptionInfo{Encrypted: false, Mechanism: "FileVault"}
	default:
		return unknownEncryption
	}
}
