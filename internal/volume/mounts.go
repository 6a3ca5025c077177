package volume

import (
	"bufio"
	"bytes"
	"strings"
)

// mountEntry is one line of the mount table we care about.
type mountEntry struct {
	Device     string
	MountPoint string
	FSType     string
}

// virtualDevicePrefixes are device nodes that do not represent real
// block storage and are rejected during enumeration.
var virtualDevicePrefixes = []string{
	"/dev/loop",
	"/dev/ram",
	"/dev/zram",
	"/dev/fd",
}

// parseMountTable extracts block-device-backed mounts from
// /proc/mounts content. Virtual and pseudo filesystems are dropped,
// and each device is reported once (the first mount wins).
func parseMountTable(data []byte) []mountEntry {
	var entries []mountEntry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		device, mountPoint, fsType := fields[0], fields[1], fields[2]

		if !strings.HasPrefix(device, "/dev/") {
			continue
		}
		if isVirtualDevice(device) {
			continue
		}
		if seen[device] {
			continue
		}
		seen[device] = true

		// Octal escapes in mount points (e.g. \040 for space).
		entries = append(entries, mountEntry{
			Device:     device,
			MountPoint: unescapeMountPath(mountPoint),
			FSType:     fsType,
		})
	}

	return entries
}

func isVirtualDevice(device string) bool {
	for _, prefix := range virtualDevicePrefixes {
		if strings.HasPrefix(device, prefix) {
			return true
		}
	}
	return false
}

// unescapeMountPath decodes the octal escapes the kernel uses for
// whitespace in mount points.
func unescapeMountPath(s string) string {
	replacer := strings.NewReplacer(
		`\040`, " ",
		`\011`, "\t",
		`\012`, "\n",
		`\134`, `\`,
	)
	return replacer.Replace(s)
}
