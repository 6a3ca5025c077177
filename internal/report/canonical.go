package report

import (
	"encoding/json"

	"residue/internal/model"
)

// CanonicalPayload renders the signable byte form of a payload. The
// payload is a closed set of typed structs, so encoding/json emits
// fields in declaration order and the output is deterministic for
// equal payloads. Signature and public key are not part of the
// payload type and can never leak into the signed bytes.
func CanonicalPayload(p model.ReportPayload) ([]byte, error) {
	return json.Marshal(p)
}
