// Package report builds, signs, verifies, and writes scan reports.
// Signatures cover the canonical JSON form of the payload; the
// signature and public key live outside the signed bytes.
package report

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"residue/internal/model"
)

// SigningService holds a process-lifetime ed25519 keypair. Keys are
// generated at Init and discarded at Shutdown; a report's embedded
// public key is the only durable trust anchor across restarts.
type SigningService struct {
	mu   sync.RWMutex
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewSigningService creates an uninitialized SigningService. Sign and
// Verify fail until Init has been called.
func NewSigningService() *SigningService {
	return &SigningService{}
}

// Init generates the process keypair. Calling Init again replaces the
// keypair; reports signed before that can still verify through their
// embedded key but will no longer match the active key.
func (s *SigningService) Init() error {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating signing key: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.priv = priv
	s.pub = pub
	return nil
}

// Shutdown discards the keypair.
func (s *SigningService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.priv {
		s.priv[i] = 0
	}
	s.priv = nil
	s.pub = nil
}

// PublicKey returns the active public key, base64-encoded, or "" when
// the service is not initialized.
func (s *SigningService) PublicKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pub == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(s.pub)
}

// Sign serializes the payload canonically and signs it, returning the
// completed report with signature and public key attached.
func (s *SigningService) Sign(payload model.ReportPayload) (model.Report, error) {
	s.mu.RLock()
	priv := s.priv
	pub := s.pub
	s.mu.RUnlock()

	if priv == nil {
		return model.Report{}, fmt.Errorf("signing service not initialized")
	}

	canonical, err := CanonicalPayload(payload)
	if err != nil {
		return model.Report{}, fmt.Errorf("serializing payload: %w", err)
	}

	sig := ed25519.Sign(priv, canonical)
	return model.Report{
		ReportPayload: payload,
		Signature:     base64.StdEncoding.EncodeToString(sig),
		PublicKey:     base64.StdEncoding.EncodeToString(pub),
	}, nil
}

// Verify checks the report's signature against its embedded public
// key. PublicKeyMatch additionally reports whether that embedded key
// is the service's active key; a mismatch with a valid signature means
// the report was signed by an earlier process.
func (s *SigningService) Verify(r model.Report) model.VerifyReportResult {
	result := model.VerifyReportResult{
		ReportID:  r.ReportID,
		Timestamp: r.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}

	pub, err := base64.StdEncoding.DecodeString(r.PublicKey)
	if err != nil {
		result.Error = fmt.Sprintf("decoding public key: %v", err)
		return result
	}
	if len(pub) != ed25519.PublicKeySize {
		result.Error = fmt.Sprintf("public key has %d bytes, want %d", len(pub), ed25519.PublicKeySize)
		return result
	}

	sig, err := base64.StdEncoding.DecodeString(r.Signature)
	if err != nil {
		result.Error = fmt.Sprintf("decoding signature: %v", err)
		return result
	}

	canonical, err := CanonicalPayload(r.ReportPayload)
	if err != nil {
		result.Error = fmt.Sprintf("serializing payload: %v", err)
		return result
	}

	result.Valid = ed25519.Verify(ed25519.PublicKey(pub), canonical, sig)
	result.PublicKeyMatch = r.PublicKey == s.PublicKey()
	return result
}
