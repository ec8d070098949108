package observer

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/sjzar/freedom/internal/errors"
	"github.com/sjzar/freedom/internal/model"
)

// Snapshot produces a point-in-time list of visible processes.
type Snapshot interface {
	Processes(ctx context.Context) ([]model.ProcessInfo, error)
}

// ProcessSnapshot lists processes through gopsutil.
type ProcessSnapshot struct{}

func NewProcessSnapshot() *ProcessSnapshot {
	return &ProcessSnapshot{}
}

// Processes returns every process whose name could be read. Processes that
// exited or deny access in the meantime are skipped.
func (s *ProcessSnapshot) Processes(ctx context.Context) ([]model.ProcessInfo, error) {
	processes, err := process.ProcessesWithContext(ctx)
	if err != nil {
		log.Err(err).Msg("list processes failed")
		return nil, errors.ListProcessesFailed(err)
	}

	result := make([]model.ProcessInfo, 0, len(processes))
	for _, p := range processes {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			log.Debug().Err(err).Int32("pid", p.Pid).Msg("skip unreadable process")
			continue
		}
		result = append(result, model.ProcessInfo{Name: name, PID: p.Pid})
	}

	return result, nil
}
