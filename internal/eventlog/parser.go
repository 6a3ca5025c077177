package eventlog

import (
	"strings"
	"unicode/utf8"

	"residue/internal/model"
)

// maxDescriptionLen bounds stored event descriptions.
const maxDescriptionLen = 200

// rawEvent is one unparsed-then-parsed wevtutil text block.
type rawEvent struct {
	EventID     string
	TimeCreated string
	Level       string
	Source      string
	Description string
}

// ParseEvents reads `wevtutil qe ... /f:text` output. Each record
// starts with an "Event[N]:" marker followed by indented "Key: Value"
// lines; everything after the "Description:" line up to the next
// marker is free text. Records missing both an event ID and a creation
// time are discarded; they carry nothing classifiable.
func ParseEvents(out []byte) []model.EventLogEntry {
	var entries []model.EventLogEntry

	for _, block := range splitEventBlocks(string(out)) {
		raw := parseEventBlock(block)
		if raw.EventID == "" && raw.TimeCreated == "" {
			continue
		}
		entries = append(entries, model.EventLogEntry{
			EventID:     raw.EventID,
			TimeCreated: raw.TimeCreated,
			Severity:    normalizeSeverity(raw.Level),
			Source:      raw.Source,
			Description: truncate(raw.Description, maxDescriptionLen),
			PrivacyRisk: ClassifyPrivacyRisk(raw.EventID),
		})
	}

	return entries
}

// splitEventBlocks cuts the output at "Event[" markers.
func splitEventBlocks(s string) []string {
	var blocks []string
	lines := strings.Split(s, "\n")

	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Event[") {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// parseEventBlock extracts the fields of one event block.
func parseEventBlock(block string) rawEvent {
	var raw rawEvent
	lines := strings.Split(block, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		key, value, found := strings.Cut(trimmed, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Event ID":
			raw.EventID = value
		case "Date":
			// The timestamp itself contains ':'; re-cut on the first
			// ": " so the value survives intact.
			if _, v, ok := strings.Cut(trimmed, ": "); ok {
				raw.TimeCreated = strings.TrimSpace(v)
			} else {
				raw.TimeCreated = value
			}
		case "Level":
			raw.Level = value
		case "Source":
			raw.Source = value
		case "Description":
			raw.Description = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return raw
		}
	}
	return raw
}

// normalizeSeverity maps wevtutil level names onto the fixed enum.
func normalizeSeverity(level string) model.EventSeverity {
	switch level {
	case "Critical":
		return model.SeverityCritical
	case "Error":
		return model.SeverityError
	case "Warning":
		return model.SeverityWarning
	case "Information":
		return model.SeverityInformation
	default:
		return model.SeverityUnknown
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary so the cut never leaves an invalid
	// UTF-8 tail.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
