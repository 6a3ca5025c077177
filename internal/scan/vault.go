package scan

import "io"

// Vault is an off-host retention backend for signed report artifacts.
type Vault interface {
	// PutReport stores one named artifact of a report. Storing the
	// same report/name pair again overwrites it.
	PutReport(reportID, name string, r io.Reader, size int64) error

	// GetReport retrieves one named artifact of a report and writes
	// it to w.
	GetReport(reportID, name string, w io.Writer) error

	// ValidateSetup verifies the backend is reachable and writable.
	ValidateSetup() error
}

// Encryptor protects exported report data at rest. Setup generates the
// key material; Unlock returns a context able to decrypt it again.
type Encryptor interface {
	Setup(passphrase string) error
	Encrypt(r io.Reader, w io.Writer) error
	Unlock(passphrase string) (DecryptionContext, error)
	IsConfigured() bool
}

// DecryptionContext holds unlocked key material for decrypting
// exported reports.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
