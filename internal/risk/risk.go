// Package risk turns probe outputs into a deterministic data-recovery
// risk score. Scoring is a pure function of its inputs: the same
// volumes and factors always produce the same score and tier.
package risk

import (
	"residue/internal/model"
)

// Score weights. The base reflects that an unexamined machine leaks
// some recoverable data by default; each factor shifts it.
const (
	baseScore         = 50
	swapWeight        = 20
	snapshotWeight    = 25
	encryptionCredit  = 30
	freeSpaceWeight   = 15
	freeSpaceCritical = 20.0 // percent free above which residue lingers
)

// Inputs collects everything the scorer consumes.
type Inputs struct {
	Volumes   []model.Volume
	SwapFile  model.RiskFactor
	Snapshots model.RiskFactor
}

// Assess computes the risk assessment from probe outputs. It never
// fails; callers that could not gather inputs should report
// model.RiskUnknown themselves instead of calling Assess.
func Assess(in Inputs) model.RiskAssessment {
	encryption := encryptionFactor(in.Volumes)
	freeSpace := freeSpaceFactor(in.Volumes)

	score := baseScore
	if in.SwapFile.Present {
		score += swapWeight
	}
	if in.Snapshots.Present {
		score += snapshotWeight
	}
	if encryption.Enabled {
		score -= encryptionCredit
	}
	if freeSpace.Percent > freeSpaceCritical {
		score += freeSpaceWeight
	}
	score = clamp(score, 0, 100)

	swap := in.SwapFile
	snapshots := in.Snapshots
	return model.RiskAssessment{
		Score: score,
		Risk:  Tier(score),
		Factors: model.RiskFactors{
			SwapFile:   &swap,
			Snapshots:  &snapshots,
			Encryption: &encryption,
			FreeSpace:  &freeSpace,
		},
	}
}

// Unknown is the assessment reported when upstream probes failed
// outright and no meaningful score exists.
func Unknown(reason string) model.RiskAssessment {
	return model.RiskAssessment{
		Score: 0,
		Risk:  model.RiskUnknown,
		Error: reason,
	}
}

// Tier maps a clamped score onto the three-tier scale.
func Tier(score int) model.RiskTier {
	switch {
	case score > 70:
		return model.RiskHigh
	case score > 40:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// encryptionFactor reports whether every volume is encrypted, plus the
// coverage percentage. The credit only applies at full coverage; a
// single cleartext volume leaves recoverable residue.
func encryptionFactor(volumes []model.Volume) model.EncryptionFactor {
	if len(volumes) == 0 {
		return model.EncryptionFactor{}
	}
	encrypted := 0
	for _, v := range volumes {
		if v.Encryption.Encrypted {
			encrypted++
		}
	}
	return model.EncryptionFactor{
		Enabled:  encrypted == len(volumes),
		Coverage: float64(encrypted) / float64(len(volumes)) * 100,
	}
}

// freeSpaceFactor computes aggregate free space across all volumes.
func freeSpaceFactor(volumes []model.Volume) model.FreeSpaceFactor {
	var total, free uint64
	for _, v := range volumes {
		total += v.TotalBytes
		free += v.FreeBytes
	}
	if total == 0 {
		return model.FreeSpaceFactor{}
	}
	return model.FreeSpaceFactor{
		Percent: float64(free) / float64(total) * 100,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
