package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/paintbynumbers/internal/system"
)

// Report formats the performance summary printed with -stats.
func Report(build, input string, results []*Result, total time.Duration, host system.HostStats) string {
	var b strings.Builder
	b.WriteString("--- [PERFORMANCE REPORT] ---\n")
	fmt.Fprintf(&b, "Build: %s\n", build)
	fmt.Fprintf(&b, "Input: %s\n", filepath.Base(input))
	fmt.Fprintf(&b, "Total Time: %.3fs\n", total.Seconds())
	for _, r := range results {
		fmt.Fprintf(&b, "Block %2d: quantize %.3fs | palette %.3fs | labels %.3fs | colors %d | labels %d\n",
			r.BlockSize,
			r.Timings.Quantize.Seconds(),
			r.Timings.Palette.Seconds(),
			r.Timings.Labels.Seconds(),
			len(r.Palette),
			len(r.Labels),
		)
	}
	fmt.Fprintf(&b, "CPUs: %d | RSS: %.1f MiB | Host memory: %.1f%% used of %.1f MiB, %.1f MiB available\n",
		host.LogicalCPUs, system.MiB(host.ProcessRSS), host.MemoryUsedPc,
		system.MiB(host.TotalMemory), system.MiB(host.AvailMemory))
	b.WriteString("----------------------------\n")
	return b.String()
}

// AppendBenchmarkLog appends one line per run to path.
func AppendBenchmarkLog(path, build, input string, results []*Result, total time.Duration, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, r := range results {
		_, err := fmt.Fprintf(f, "[%s] Build: %s | Input: %s | Block: %d | Colors: %d | Labels: %d | Pipeline: %.3fs | Total: %.3fs\n",
			now.Format("2006-01-02 15:04:05"),
			build,
			filepath.Base(input),
			r.BlockSize,
			len(r.Palette),
			len(r.Labels),
			r.Timings.Total().Seconds(),
			total.Seconds(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
