// Package vault provides off-host retention backends for signed
// report artifacts. Every backend implements scan.Vault.
package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"residue/internal/scan"
)

// MemoryVault is an in-memory implementation of the Vault interface.
// It stores all artifacts in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryVault struct {
	name  string
	items map[string][]byte // "reportID/name" -> artifact bytes
	mu    sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:  name,
		items: make(map[string][]byte),
	}
}

// itemKey returns the map key for a report/artifact pair.
func itemKey(reportID, name string) string {
	return reportID + "/" + name
}

// PutReport stores one named artifact of a report. Storing the same
// pair again overwrites it.
func (m *MemoryVault) PutReport(reportID, name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[itemKey(reportID, name)] = data
	return nil
}

// GetReport retrieves one named artifact of a report.
func (m *MemoryVault) GetReport(reportID, name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.items[itemKey(reportID, name)]
	if !ok {
		return fmt.Errorf("artifact %q not found for report: %s", name, reportID)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	return nil
}

// ValidateSetup always succeeds for an in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryVault implements scan.Vault
var _ scan.Vault = (*MemoryVault)(nil)
