package observer

import (
	"bufio"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/freedom/internal/errors"
	"github.com/sjzar/freedom/internal/freedom/conf"
	"github.com/sjzar/freedom/internal/model"
	"github.com/sjzar/freedom/pkg/util"
)

// Scanner matches process snapshots against the observer watchlist.
type Scanner struct {
	now func() time.Time
}

func NewScanner() *Scanner {
	return &Scanner{now: time.Now}
}

// WithClock replaces the time source used to stamp detections.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Scan returns the processes whose name is on the watchlist, in snapshot
// order. Names are matched exactly and case-sensitively.
func (s *Scanner) Scan(processes []model.ProcessInfo, settings *conf.ObserverSettings) []*model.ObserverEntry {
	watchlist := make(map[string]struct{}, len(settings.Watchlist))
	for _, name := range settings.Watchlist {
		watchlist[name] = struct{}{}
	}

	var (
		result []*model.ObserverEntry
		last   time.Time
	)
	for _, p := range processes {
		if _, ok := watchlist[p.Name]; !ok {
			continue
		}
		// detections within one scan never go back in time
		ts := s.now()
		if ts.Before(last) {
			ts = last
		}
		last = ts
		result = append(result, &model.ObserverEntry{
			Name:       p.Name,
			PID:        p.PID,
			DetectedAt: ts,
		})
	}

	return result
}

// Record appends entries to the configured output file. It is a no-op when
// writing is disabled. A failure here never invalidates the scan result.
func (s *Scanner) Record(entries []*model.ObserverEntry, settings *conf.ObserverSettings) error {
	if !settings.WriteToOutput {
		return nil
	}
	if settings.OutputFile == "" {
		return errors.ConfigMissing("settings.check_for_observers.output_file")
	}

	if dir := filepath.Dir(settings.OutputFile); dir != "." {
		if err := util.PrepareDir(dir); err != nil {
			return errors.FileWriteFailed(settings.OutputFile, err)
		}
	}

	f, err := os.OpenFile(settings.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.FileWriteFailed(settings.OutputFile, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := w.WriteString(e.Line() + "\n"); err != nil {
			return errors.FileWriteFailed(settings.OutputFile, err)
		}
	}
	if err := w.Flush(); err != nil {
		return errors.FileWriteFailed(settings.OutputFile, err)
	}

	log.Debug().Int("entries", len(entries)).Str("file", settings.OutputFile).Msg("observer entries written")
	return nil
}
