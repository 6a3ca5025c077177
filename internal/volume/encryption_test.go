package volume

import (
	"testing"

	"residue/internal/model"
)

const bitLockerOn = `BitLocker Drive Encryption: Configuration Tool version 10.0.22621
Copyright (C) 2013 Microsoft Corporation. All rights reserved.

Volume C: [Windows]
[OS Volume]

    Size:                 475.69 GB
    BitLocker Version:    2.0
    Conversion Status:    Fully Encrypted
    Percentage Encrypted: 100.0%
    Encryption Method:    XTS-AES 128
    Protection Status:    Protection On
    Lock Status:          Unlocked
    Identification Field: Unknown
    Key Protectors:
        TPM
        Numerical Password
`

const bitLockerOff = `Volume D: [Data]
[Data Volume]

    Size:                 931.51 GB
    BitLocker Version:    None
    Conversion Status:    Fully Decrypted
    Percentage Encrypted: 0.0%
    Encryption Method:    None
    Protection Status:    Protection Off
    Lock Status:          Unlocked
`

func TestParseBitLockerStatus(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want model.EncryptionInfo
	}{
		{"protection on", bitLockerOn, model.EncryptionInfo{Encrypted: true, Mechanism: "BitLocker"}},
		{"protection off", bitLockerOff, model.EncryptionInfo{Encrypted: false, Mechanism: "BitLocker"}},
		{"garbage output", "not manage-bde output", unknownEncryption},
		{"empty output", "", unknownEncryption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseBitLockerStatus([]byte(tt.out)); got != tt.want {
				t.Errorf("parseBitLockerStatus() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLsblkEncryption(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want model.EncryptionInfo
	}{
		{
			"dm-crypt mapper device",
			"crypt ext4\n",
			model.EncryptionInfo{Encrypted: true, Mechanism: "LUKS"},
		},
		{
			"LUKS container",
			"part crypto_LUKS\n",
			model.EncryptionInfo{Encrypted: true, Mechanism: "LUKS"},
		},
		{
			"plain partition",
			"part ext4\n",
			model.EncryptionInfo{Encrypted: false, Mechanism: ""},
		},
		{
			"empty",
			"",
			model.EncryptionInfo{Encrypted: false, Mechanism: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLsblkEncryption([]byte(tt.out)); got != tt.want {
				t.Errorf("parseLsblkEncryption() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFDESetupStatus(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want model.EncryptionInfo
	}{
		{"on", "FileVault is On.\n", model.EncryptionInfo{Encrypted: true, Mechanism: "FileVault"}},
		{"off", "FileVault is Off.\n", model.EncryptionInfo{Encrypted: false, Mechanism: "FileVault"}},
		{"garbage", "fdesetup: error", unknownEncryption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFDESetupStatus([]byte(tt.out)); got != tt.want {
				t.Errorf("parseFDESetupStatus() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
