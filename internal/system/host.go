package system

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats is a snapshot of the machine and of this process.
type HostStats struct {
	LogicalCPUs  int
	TotalMemory  uint64 // bytes
	AvailMemory  uint64 // bytes
	ProcessRSS   uint64 // bytes
	MemoryUsedPc float64
}

// ReadHostStats queries gopsutil. Fields that cannot be read stay zero and
// only the first error is returned.
func ReadHostStats() (HostStats, error) {
	var st HostStats
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if n, err := cpu.Counts(true); err == nil {
		st.LogicalCPUs = n
	} else {
		keep(err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		st.TotalMemory = vm.Total
		st.AvailMemory = vm.Available
		st.MemoryUsedPc = vm.UsedPercent
	} else {
		keep(err)
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			st.ProcessRSS = mi.RSS
		} else {
			keep(err)
		}
	} else {
		keep(err)
	}

	return st, firstErr
}

// DefaultWorkers returns the logical CPU count, falling back to
// runtime.NumCPU when gopsutil cannot read it.
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// MiB converts bytes to mebibytes for reports.
func MiB(b uint64) float64 {
	return float64(b) / (1 << 20)
}
