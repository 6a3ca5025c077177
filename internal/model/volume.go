package model

import "fmt"

const bytesPerGB = 1 << 30

// SetCapacity fills the byte fields and recomputes every derived
// presentation field from them. usedBytes is always total-free; the GB
// strings are decimal with 2 places; usage percent has 1 place and is
// "0.0" when the volume reports zero capacity.
func (v *Volume) SetCapacity(totalBytes, freeBytes uint64) {
	if freeBytes > totalBytes {
		freeBytes = totalBytes
	}
	v.TotalBytes = totalBytes
	v.FreeBytes = freeBytes
	v.UsedBytes = totalBytes - freeBytes

	v.TotalGB = formatGB(v.TotalBytes)
	v.FreeGB = formatGB(v.FreeBytes)
	v.UsedGB = formatGB(v.UsedBytes)

	if totalBytes == 0 {
		v.UsagePercent = "0.0"
		return
	}
	v.UsagePercent = fmt.Sprintf("%.1f", float64(v.UsedBytes)/float64(totalBytes)*100)
}

func formatGB(b uint64) string {
	return fmt.Sprintf("%.2f", float64(b)/bytesPerGB)
}
