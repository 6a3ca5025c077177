package model

import "time"

// VolumeKind distinguishes drive-letter volumes from mount points.
type VolumeKind string

const (
	VolumeKindDrive VolumeKind = "drive"
	VolumeKindMount VolumeKind = "mount"
)

// Volume represents an addressable storage unit with capacity and
// encryption attributes. All byte fields are exact; the GB strings and
// usage percent are derived at construction time and must never be set
// independently of the byte fields.
type Volume struct {
	Identifier   string     `json:"identifier"` // drive letter ("C:") or mount path
	MountPath    string     `json:"mountPath"`
	DeviceNode   string     `json:"deviceNode,omitempty"` // block device, Linux only
	Kind         VolumeKind `json:"kind"`
	TotalBytes   uint64     `json:"totalBytes"`
	FreeBytes    uint64     `json:"freeBytes"`
	UsedBytes    uint64     `json:"usedBytes"`
	TotalGB      string     `json:"totalGB"`
	FreeGB       string     `json:"freeGB"`
	UsedGB       string     `json:"usedGB"`
	UsagePercent string     `json:"usagePercent"`
	Encryption   EncryptionInfo `json:"encryption"`
}

// EncryptionInfo is the platform-neutral view of a volume's encryption
// state. Mechanism names the platform subsystem ("BitLocker", "LUKS",
// "FileVault") or "Unknown" when the query failed.
type EncryptionInfo struct {
	Encrypted bool   `json:"encrypted"`
	Mechanism string `json:"mechanism,omitempty"`
}

// ArtifactCategory classifies how a hidden artifact was identified.
type ArtifactCategory string

const (
	CategoryDotfile         ArtifactCategory = "dotfile"
	CategoryHidden          ArtifactCategory = "hidden"
	CategorySystemHidden    ArtifactCategory = "system-hidden"
	CategoryHiddenDirectory ArtifactCategory = "hidden-directory"
	CategoryRegistry        ArtifactCategory = "registry"
	CategoryCache           ArtifactCategory = "cache"
	CategoryConfig          ArtifactCategory = "config"
	CategorySSH             ArtifactCategory = "ssh"
	CategoryHistory         ArtifactCategory = "history"
	CategorySwap            ArtifactCategory = "swap"
)

// HiddenArtifact is a file or directory considered non-obvious to a
// casual user. Immutable once produced; directories carry SizeBytes 0.
type HiddenArtifact struct {
	Path         string           `json:"path"`
	DisplayName  string           `json:"displayName,omitempty"`
	SizeBytes    int64            `json:"sizeBytes"`
	LastModified time.Time        `json:"lastModified"`
	AttributeTag string           `json:"attributeTag"`
	Category     ArtifactCategory `json:"category"`
	Platform     string           `json:"platform"`
	IsDirectory  bool             `json:"isDirectory"`
}

// HiddenScanResult is the outcome of one hidden-artifact scan.
// Artifacts is capped; TotalDiscovered is the true pre-truncation count.
type HiddenScanResult struct {
	Artifacts       []HiddenArtifact `json:"artifacts"`
	TotalDiscovered int              `json:"totalDiscovered"`
	ScanRoot        string           `json:"scanRoot"`
	Timestamp       time.Time        `json:"timestamp"`
	Error           string           `json:"error,omitempty"`
}

// BrowserArtifact is a single credential/history/cookie store file found
// inside a browser profile. Only metadata is recorded; contents are never
// read.
type BrowserArtifact struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"sizeBytes"`
	LastModified time.Time `json:"lastModified"`
	SemanticType string    `json:"semanticType"` // credentials, cookies, history, autofill, keys
}

// BrowserProfile is a discovered browser profile with at least one
// artifact. Profiles with zero artifacts are dropped by the detector.
type BrowserProfile struct {
	BrowserFamily string            `json:"browserFamily"`
	ProfileName   string            `json:"profileName"`
	ProfilePath   string            `json:"profilePath"`
	Artifacts     []BrowserArtifact `json:"artifacts"`
}

// BrowserProfilesResult is the outcome of one browser-profile scan.
type BrowserProfilesResult struct {
	Profiles   []BrowserProfile `json:"profiles"`
	TotalFound int              `json:"totalFound"`
	Error      string           `json:"error,omitempty"`
}

// EventSeverity is the normalized severity of an OS log entry.
type EventSeverity string

const (
	SeverityCritical    EventSeverity = "Critical"
	SeverityError       EventSeverity = "Error"
	SeverityWarning     EventSeverity = "Warning"
	SeverityInformation EventSeverity = "Information"
	SeverityUnknown     EventSeverity = "Unknown"
)

// PrivacyRisk is the fixed three-tier classification of an event ID.
type PrivacyRisk string

const (
	PrivacyRiskHigh   PrivacyRisk = "High"
	PrivacyRiskMedium PrivacyRisk = "Medium"
	PrivacyRiskLow    PrivacyRisk = "Low"
)

// EventLogEntry is one parsed, privacy-relevant OS event log record.
type EventLogEntry struct {
	EventID     string        `json:"eventId"`
	TimeCreated string        `json:"timeCreated"`
	Severity    EventSeverity `json:"severity"`
	Source      string        `json:"source"`
	Description string        `json:"description"` // truncated to 200 chars
	PrivacyRisk PrivacyRisk   `json:"privacyRisk"`
}

// ChannelLog groups the parsed entries of one log channel.
type ChannelLog struct {
	Channel string          `json:"channel"`
	Entries []EventLogEntry `json:"entries"`
}

// EventLogsResult is the outcome of one event-log scan.
type EventLogsResult struct {
	Logs         []ChannelLog `json:"logs"`
	TotalEntries int          `json:"totalEntries"`
	LogSources   []string     `json:"logSources"`
	ScanSummary  string       `json:"scanSummary"`
	Error        string       `json:"error,omitempty"`
}

// RiskTier is the classification derived from the risk score.
type RiskTier string

const (
	RiskLow     RiskTier = "LOW"
	RiskMedium  RiskTier = "MEDIUM"
	RiskHigh    RiskTier = "HIGH"
	RiskUnknown RiskTier = "UNKNOWN"
)

// RiskFactor describes one input to the risk score and whether it was
// present, plus a short human note.
type RiskFactor struct {
	Present bool   `json:"present"`
	Detail  string `json:"detail,omitempty"`
}

// EncryptionFactor extends RiskFactor with volume coverage.
type EncryptionFactor struct {
	Enabled  bool    `json:"enabled"`
	Coverage float64 `json:"coverage"` // percent of volumes encrypted
}

// FreeSpaceFactor carries the free-space ratio input.
type FreeSpaceFactor struct {
	Percent float64 `json:"percent"`
}

// RiskFactors is the set of signals feeding the score.
type RiskFactors struct {
	SwapFile   *RiskFactor       `json:"swapFile,omitempty"`
	Snapshots  *RiskFactor       `json:"snapshots,omitempty"`
	Encryption *EncryptionFactor `json:"encryption,omitempty"`
	FreeSpace  *FreeSpaceFactor  `json:"freeSpace,omitempty"`
}

// RiskAssessment is the recoverability estimate for the machine's
// current state. Derived entirely from probe outputs; never persisted
// standalone.
type RiskAssessment struct {
	Score   int         `json:"score"` // 0..100
	Risk    RiskTier    `json:"risk"`
	Factors RiskFactors `json:"factors"`
	Error   string      `json:"error,omitempty"`
}

// ReportPayload is the canonical, signable portion of a report. Its
// JSON serialization (struct field order, typed values only) is the
// byte form the signature covers; Signature and PublicKey live outside
// it on Report.
type ReportPayload struct {
	ReportID  string                `json:"reportId"`
	Timestamp time.Time             `json:"timestamp"`
	Version   string                `json:"version"`
	Volumes   []Volume              `json:"volumes"`
	Hidden    HiddenScanResult      `json:"hidden"`
	Browsers  BrowserProfilesResult `json:"browsers"`
	EventLogs EventLogsResult       `json:"eventLogs"`
	Risk      RiskAssessment        `json:"risk"`
}

// Report is the signed, persisted artifact. Immutable once signed.
type Report struct {
	ReportPayload
	Signature string `json:"signature"` // base64 ed25519 signature over the canonical payload
	PublicKey string `json:"publicKey"` // base64 ed25519 public key of the signer
}

// ArtifactPreview is a bounded, redacting preview of a file's contents.
type ArtifactPreview struct {
	Content   string `json:"content"`
	BytesRead int    `json:"bytesRead"`
	IsBinary  bool   `json:"isBinary"`
	Error     string `json:"error,omitempty"`
}

// GenerateReportResult is the boundary response for report generation.
type GenerateReportResult struct {
	Success      bool   `json:"success"`
	ReportID     string `json:"reportId,omitempty"`
	DocumentPath string `json:"documentPath,omitempty"`
	DataPath     string `json:"dataPath,omitempty"`
	Signature    string `json:"signature,omitempty"`
	Error        string `json:"error,omitempty"`
}

// VerifyReportResult is the boundary response for report verification.
type VerifyReportResult struct {
	Valid          bool   `json:"valid"`
	ReportID       string `json:"reportId,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
	PublicKeyMatch bool   `json:"publicKeyMatch"`
	Error          string `json:"error,omitempty"`
}

// WipeProgress is one step event of the wipe-simulation stream. The
// simulation has no deletion semantics; only the event contract matters.
type WipeProgress struct {
	Step            int    `json:"step"`
	TotalSteps      int    `json:"totalSteps"`
	ProgressPercent int    `json:"progressPercent"`
	Message         string `json:"message"`
	Completed       bool   `json:"completed"`
}
