package freedom

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/freedom/internal/bootstrap"
	"github.com/sjzar/freedom/internal/fetch"
	"github.com/sjzar/freedom/internal/freedom/conf"
	"github.com/sjzar/freedom/internal/observer"
	"github.com/sjzar/freedom/internal/platform"
	"github.com/sjzar/freedom/internal/runner"
)

const (
	CmdCheckForObservers = "check_for_observers"
	CmdStartTor          = "start_tor"
)

// CommandFunc runs one command against the given settings file.
type CommandFunc func(ctx context.Context, configFile string) error

// Manager wires settings and services for each command.
type Manager struct {
	out io.Writer

	snapshot observer.Snapshot
	scanner  *observer.Scanner

	platform func() (*platform.Profile, error)
	fetcher  fetch.Fetcher
	runner   runner.Runner
	progress fetch.ProgressFunc
}

func New() *Manager {
	return &Manager{
		out:      os.Stdout,
		snapshot: observer.NewProcessSnapshot(),
		scanner:  observer.NewScanner(),
		platform: platform.Current,
		fetcher:  fetch.New(),
		runner:   runner.New(),
		progress: fetch.NewTerminalProgressBar(os.Stdout).Update,
	}
}

// Commands returns the dispatch table, keyed by command name.
func (m *Manager) Commands() map[string]CommandFunc {
	return map[string]CommandFunc{
		CmdCheckForObservers: m.CommandCheckForObservers,
		CmdStartTor:          m.CommandStartTor,
	}
}

// CommandNames lists the dispatch table keys in a stable order.
func (m *Manager) CommandNames() []string {
	cmds := m.Commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandCheckForObservers scans the process list for watchlisted names.
func (m *Manager) CommandCheckForObservers(ctx context.Context, configFile string) error {
	settings, err := conf.LoadObserverSettings(configFile)
	if err != nil {
		return err
	}

	m.printf("Reading observers data...\n")
	processes, err := m.snapshot.Processes(ctx)
	if err != nil {
		return err
	}

	entries := m.scanner.Scan(processes, settings)
	if len(entries) == 0 {
		m.printf("No possible observers found.\n")
	} else {
		m.printf("Possible observers:\n")
		for _, e := range entries {
			m.printf("> %s\n", e)
		}
	}

	if err := m.scanner.Record(entries, settings); err != nil {
		log.Err(err).Str("file", settings.OutputFile).Msg("write observers output failed")
	}

	return nil
}

// CommandStartTor installs the tor browser when missing, then runs it until
// it exits.
func (m *Manager) CommandStartTor(ctx context.Context, configFile string) error {
	settings, err := conf.LoadToolSettings(configFile)
	if err != nil {
		return err
	}

	profile, err := m.platform()
	if err != nil {
		return err
	}
	log.Debug().Str("platform", profile.Name).Msg("platform resolved")

	b := bootstrap.New(settings, profile, m.fetcher, m.runner).
		WithOutput(m.out).
		WithProgress(m.progress)

	if err := b.Run(ctx); err != nil {
		log.Debug().Stringer("state", b.State()).Msg("bootstrap stopped")
		return err
	}

	return nil
}

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
