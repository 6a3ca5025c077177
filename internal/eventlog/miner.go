// Package eventlog mines privacy-relevant records from the Windows
// event log through wevtutil. On every other platform mining reports
// an explicit unsupported error rather than a silent empty result.
package eventlog

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"residue/internal/model"
	"residue/internal/proc"
)

const (
	maxChannels      = 50
	rawPerChannel    = 100
	parsedPerChannel = 20
)

// priorityChannels are queried in order; channels beyond this list are
// enumerated into LogSources but never queried.
var priorityChannels = []string{
	"Security",
	"System",
	"Application",
	"Microsoft-Windows-PowerShell/Operational",
	"Microsoft-Windows-TaskScheduler/Operational",
}

// Miner enumerates and queries Windows event log channels.
type Miner struct {
	runner proc.Runner
	goos   string
}

// Option configures a Miner.
type Option func(*Miner)

// WithGOOS overrides the platform the miner believes it runs on.
func WithGOOS(goos string) Option {
	return func(m *Miner) { m.goos = goos }
}

// NewMiner creates a Miner that executes wevtutil through runner.
func NewMiner(runner proc.Runner, opts ...Option) *Miner {
	m := &Miner{
		runner: runner,
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scan enumerates channels and queries the priority ones for
// allowlisted event IDs. The result is always populated; failures
// surface in the Error field, and a channel that fails to answer is
// skipped without failing the scan.
func (m *Miner) Scan(ctx context.Context) model.EventLogsResult {
	if m.goos != "windows" {
		return model.EventLogsResult{
			Error: fmt.Sprintf("event log mining is not supported on %s", m.goos),
		}
	}

	channels, err := m.enumerateChannels(ctx)
	if err != nil {
		return model.EventLogsResult{
			Error: fmt.Sprintf("enumerating event log channels: %v", err),
		}
	}

	available := make(map[string]bool, len(channels))
	for _, ch := range channels {
		available[ch] = true
	}

	result := model.EventLogsResult{LogSources: channels}
	query := buildQuery()

	for _, channel := range priorityChannels {
		if !available[channel] {
			continue
		}
		entries, err := m.queryChannel(ctx, channel, query)
		if err != nil {
			// Access-denied and missing channels are routine; the
			// remaining channels still get queried.
			continue
		}
		if len(entries) == 0 {
			continue
		}
		result.Logs = append(result.Logs, model.ChannelLog{
			Channel: channel,
			Entries: entries,
		})
		result.TotalEntries += len(entries)
	}

	result.ScanSummary = fmt.Sprintf("scanned %d channels, parsed %d privacy-relevant entries from %d sources",
		len(channels), result.TotalEntries, len(result.Logs))
	return result
}

// enumerateChannels lists registered channels, capped at maxChannels.
func (m *Miner) enumerateChannels(ctx context.Context) ([]string, error) {
	out, err := m.runner.Run(ctx, "wevtutil", "el")
	if err != nil {
		return nil, err
	}

	var channels []string
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if name == "" {
			continue
		}
		channels = append(channels, name)
		if len(channels) >= maxChannels {
			break
		}
	}
	return channels, nil
}

// queryChannel fetches the newest raw records of one channel and keeps
// the first parsedPerChannel parsed entries.
func (m *Miner) queryChannel(ctx context.Context, channel, query string) ([]model.EventLogEntry, error) {
	out, err := m.runner.Run(ctx, "wevtutil", "qe", channel,
		fmt.Sprintf("/c:%d", rawPerChannel),
		"/rd:true",
		"/f:text",
		"/q:"+query,
	)
	if err != nil {
		return nil, err
	}

	entries := ParseEvents(out)
	if len(entries) > parsedPerChannel {
		entries = entries[:parsedPerChannel]
	}
	return entries, nil
}

// buildQuery renders the XPath filter selecting allowlisted event IDs.
func buildQuery() string {
	ids := allowlistedEventIDs()
	terms := make([]string, len(ids))
	for i, id := range ids {
		terms[i] = "EventID=" + id
	}
	return "*[System[(" + strings.Join(terms, " or ") + ")]]"
}
