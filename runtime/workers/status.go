package workers

import (
	"chat-server/contract"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*StatusWorker)(nil)

// Counter is satisfied by the connection directory and the group registry.
type Counter interface {
	Count() int
}

type StatusSnapshot struct {
	Users     int
	Groups    int
	RSSBytes  uint64
	CPU       float64
	PidStatus string
}

// StatusWorker logs a periodic snapshot of the server: logged-in users,
// existing groups and the resource usage of the process itself.
type StatusWorker struct {
	log      *slog.Logger
	users    Counter
	groups   Counter
	interval time.Duration
}

func NewStatusWorker(log *slog.Logger, users, groups Counter, interval time.Duration) *StatusWorker {
	return &StatusWorker{log: log, users: users, groups: groups, interval: interval}
}

func (w *StatusWorker) Run(ctx context.Context) error {
	w.log.Info("Starting status worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snapshot, err := w.Snapshot(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "error", err)
				continue
			}
			w.log.Info("Server status",
				"users", snapshot.Users,
				"groups", snapshot.Groups,
				"rss_bytes", snapshot.RSSBytes,
				"cpu_percent", snapshot.CPU,
				"pid_status", snapshot.PidStatus,
			)
		}
	}
}

// Snapshot reads the chat counters and the process metrics of p.
func (w *StatusWorker) Snapshot(p *process.Process) (StatusSnapshot, error) {
	snapshot := StatusSnapshot{
		Users:  w.users.Count(),
		Groups: w.groups.Count(),
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		return snapshot, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return snapshot, err
	}
	status, err := p.Status()
	if err != nil {
		return snapshot, err
	}

	snapshot.RSSBytes = memInfo.RSS
	snapshot.CPU = cpuPercent
	snapshot.PidStatus = status
	return snapshot, nil
}
