package pulse

import (
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/teranos/auragraph/errors"
)

// MemoryStats is a sample of system memory for the heartbeat line.
type MemoryStats struct {
	UsedGB  float64 `json:"used_gb"`
	TotalGB float64 `json:"total_gb"`
	Percent float64 `json:"percent"`
}

const bytesPerGB = 1024 * 1024 * 1024

// SampleMemory reads current system memory usage.
func SampleMemory() (MemoryStats, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return MemoryStats{}, errors.Wrap(err, "failed to get memory stats")
	}
	return memoryStats(v.Total, v.Available), nil
}

func memoryStats(total, available uint64) MemoryStats {
	if total == 0 {
		return MemoryStats{}
	}
	used := float64(total-available) / bytesPerGB
	totalGB := float64(total) / bytesPerGB
	return MemoryStats{
		UsedGB:  used,
		TotalGB: totalGB,
		Percent: used / totalGB * 100,
	}
}
