// Package diag reports the bot process's own resource usage.
package diag

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot captures the process's state at one moment.
type Snapshot struct {
	PID       int32
	RSSBytes  uint64
	CPUPct    float64
	StartedAt time.Time
}

// Take reads the current process's memory, CPU and start time.
func Take() (*Snapshot, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}
	snap := &Snapshot{PID: p.Pid}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		snap.RSSBytes = mem.RSS
	}
	if pct, err := p.CPUPercent(); err == nil {
		snap.CPUPct = pct
	}
	if created, err := p.CreateTime(); err == nil {
		snap.StartedAt = time.UnixMilli(created)
	}
	return snap, nil
}

func (s *Snapshot) String() string {
	uptime := time.Since(s.StartedAt).Round(time.Second)
	return fmt.Sprintf("pid %d, up %s, rss %.1f MB, cpu %.1f%%",
		s.PID, uptime, float64(s.RSSBytes)/(1024*1024), s.CPUPct)
}
