package volume

import (
	"context"
	"fmt"
	"os"
	"strings"

	"residue/internal/model"
)

// SwapPresence reports whether the platform has a swap/pagefile
// backing store, a strong recoverable-residue signal.
func (p *Prober) SwapPresence(ctx context.Context) model.RiskFactor {
	switch p.goos {
	case "windows":
		return p.pagefilePresence()
	case "linux":
		return p.procSwapsPresence()
	default:
		return p.sysctlSwapPresence(ctx)
	}
}

// pagefilePresence checks each existing drive root for pagefile.sys
// and hiberfil.sys.
func (p *Prober) pagefilePresence() model.RiskFactor {
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err != nil {
			continue
		}
		for _, name := range []string{"pagefile.sys", "hiberfil.sys", "swapfile.sys"} {
			if info, err := os.Stat(root + name); err == nil {
				return model.RiskFactor{
					Present: true,
					Detail:  fmt.Sprintf("%s%s (%d bytes)", root, name, info.Size()),
				}
			}
		}
	}
	return model.RiskFactor{Present: false}
}

// procSwapsPresence reads /proc/swaps; any device line means swap is on.
func (p *Prober) procSwapsPresence() model.RiskFactor {
	data, err := os.ReadFile("/proc/swaps")
	if err != nil {
		return model.RiskFactor{Present: false, Detail: "swap table unreadable"}
	}
	return ParseProcSwaps(data)
}

// ParseProcSwaps reads /proc/swaps content. The first line is a header;
// any following non-blank line is an active swap device or file.
func ParseProcSwaps(data []byte) model.RiskFactor {
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return model.RiskFactor{Present: false}
	}
	first := strings.Fields(lines[1])
	if len(first) == 0 {
		return model.RiskFactor{Present: false}
	}
	return model.RiskFactor{Present: true, Detail: first[0]}
}

// sysctlSwapPresence queries vm.swapusage on macOS.
func (p *Prober) sysctlSwapPresence(ctx context.Context) model.RiskFactor {
	out, err := p.runner.Run(ctx, "sysctl", "vm.swapusage")
	if err != nil {
		return model.RiskFactor{Present: false, Detail: "swap query failed"}
	}
	return ParseSwapUsage(out)
}

// ParseSwapUsage reads `sysctl vm.swapusage` output, e.g.
// "vm.swapusage: total = 2048.00M  used = 58.50M  free = 1989.50M (encrypted)".
// A non-zero total means swap is configured.
func ParseSwapUsage(out []byte) model.RiskFactor {
	s := string(out)
	idx := strings.Index(s, "total =")
	if idx < 0 {
		return model.RiskFactor{Present: false}
	}
	rest := strings.TrimSpace(s[idx+len("total ="):])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return model.RiskFactor{Present: false}
	}
	total := fields[0]
	if strings.HasPrefix(total, "0.00") {
		return model.RiskFactor{Present: false}
	}
	return model.RiskFactor{Present: true, Detail: "swap total " + total}
}

// SnapshotPresence reports whether filesystem snapshots exist that
// could hold deleted data.
func (p *Prober) SnapshotPresence(ctx context.Context) model.RiskFactor {
	switch p.goos {
	case "windows":
		return p.shadowCopyPresence(ctx)
	case "darwin":
		return p.timeMachinePresence(ctx)
	default:
		return model.RiskFactor{Present: false, Detail: "snapshot probe not supported"}
	}
}

// shadowCopyPresence lists Volume Shadow Copies via vssadmin.
func (p *Prober) shadowCopyPresence(ctx context.Context) model.RiskFactor {
	out, err := p.runner.Run(ctx, "vssadmin", "list", "shadows")
	if err != nil {
		return model.RiskFactor{Present: false, Detail: "shadow copy query failed"}
	}
	return ParseShadowList(out)
}

// ParseShadowList reads `vssadmin list shadows` output and counts
// shadow copy entries.
func ParseShadowList(out []byte) model.RiskFactor {
	s := string(out)
	if strings.Contains(s, "No items found") {
		return model.RiskFactor{Present: false}
	}
	count := strings.Count(s, "Shadow Copy ID:")
	if count == 0 {
		return model.RiskFactor{Present: false}
	}
	return model.RiskFactor{Present: true, Detail: fmt.Sprintf("%d shadow copies", count)}
}

// timeMachinePresence lists local APFS snapshots via tmutil.
func (p *Prober) timeMachinePresence(ctx context.Context) model.RiskFactor {
	out, err := p.runner.Run(ctx, "tmutil", "listlocalsnapshots", "/")
	if err != nil {
		return model.RiskFactor{Present: false, Detail: "snapshot query failed"}
	}
	count := 0
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "com.apple.TimeMachine") {
			count++
		}
	}
	if count == 0 {
		return model.RiskFactor{Present: false}
	}
	return model.RiskFactor{Present: true, Detail: fmt.Sprintf("%d local snapshots", count)}
}
