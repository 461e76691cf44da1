package system

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a point-in-time sample of the host and this process.
type Stats struct {
	RSS         uint64 // resident set size of this process, bytes
	CPUs        int    // logical CPUs
	TotalMemory uint64 // bytes
}

// Sample reads process and host stats. Fields that cannot be read are
// left zero; the first error is returned alongside the partial sample.
func Sample() (Stats, error) {
	var s Stats
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		keep(fmt.Errorf("process: %w", err))
	} else if mi, err := proc.MemoryInfo(); err != nil {
		keep(fmt.Errorf("process memory: %w", err))
	} else {
		s.RSS = mi.RSS
	}

	if n, err := cpu.Counts(true); err != nil {
		keep(fmt.Errorf("cpu count: %w", err))
	} else {
		s.CPUs = n
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		keep(fmt.Errorf("virtual memory: %w", err))
	} else {
		s.TotalMemory = vm.Total
	}
	return s, firstErr
}

// Report summarises one run over a set of recordings.
type Report struct {
	Build      string
	Input      string
	Recordings int
	Keyframes  int
	Total      time.Duration
	Replay     time.Duration // summed across recordings
	Export     time.Duration // summed across recordings
	Stats      Stats
}

func mib(b uint64) float64 {
	return float64(b) / (1 << 20)
}

// KeysPerSecond is the replay throughput over the whole run.
func (r Report) KeysPerSecond() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Keyframes) / r.Total.Seconds()
}

func (r Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Recordings: %d | Keyframes: %d\n"+
			"Total Time: %.2fs\n"+
			"Replay: %.2fs\n"+
			"Export: %.2fs\n"+
			"Keys/s: %.0f\n"+
			"RSS: %.1f MiB | CPUs: %d | Host RAM: %.0f MiB\n"+
			"----------------------------\n",
		r.Build, r.Recordings, r.Keyframes, r.Total.Seconds(), r.Replay.Seconds(), r.Export.Seconds(),
		r.KeysPerSecond(), mib(r.Stats.RSS), r.Stats.CPUs, mib(r.Stats.TotalMemory),
	)
}

// LogLine is the single-line form appended to the benchmark log.
func (r Report) LogLine(at time.Time) string {
	return fmt.Sprintf("[%s] Build: %s | Input: %s | Recordings: %d | Keys: %d | Total: %.2fs | Replay: %.2fs | Export: %.2fs | RSS: %.1fMiB\n",
		at.Format("2006-01-02 15:04:05"),
		r.Build,
		filepath.Base(r.Input),
		r.Recordings,
		r.Keyframes,
		r.Total.Seconds(),
		r.Replay.Seconds(),
		r.Export.Seconds(),
		mib(r.Stats.RSS),
	)
}

// AppendBenchmark appends r to the log at path.
func AppendBenchmark(path string, r Report) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(r.LogLine(time.Now())); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
