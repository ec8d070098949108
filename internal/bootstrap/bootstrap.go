package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/freedom/internal/errors"
	"github.com/sjzar/freedom/internal/fetch"
	"github.com/sjzar/freedom/internal/freedom/conf"
	"github.com/sjzar/freedom/internal/platform"
	"github.com/sjzar/freedom/internal/runner"
	"github.com/sjzar/freedom/pkg/appver"
	"github.com/sjzar/freedom/pkg/util"
)

const StagingSuffix = ".partial"

// Bootstrapper makes sure the tool is installed and then runs it.
//
// Installation state is never persisted. Every run derives it from the
// presence of the install directory, so an interrupted install is picked up
// again by the next run.
type Bootstrapper struct {
	settings *conf.ToolSettings
	profile  *platform.Profile
	fetcher  fetch.Fetcher
	runner   runner.Runner
	progress fetch.ProgressFunc
	out      io.Writer

	installRoot string
	dataDir     string

	state       State
	transitions []func(from, to State)
}

func New(settings *conf.ToolSettings, profile *platform.Profile, fetcher fetch.Fetcher, runner runner.Runner) *Bootstrapper {
	return &Bootstrapper{
		settings:    settings,
		profile:     profile,
		fetcher:     fetcher,
		runner:      runner,
		out:         os.Stdout,
		installRoot: absPath(settings.InstallationPath),
		dataDir:     absPath(settings.DataDir),
		state:       NotInstalled,
	}
}

// WithProgress sets the download progress callback.
func (b *Bootstrapper) WithProgress(progress fetch.ProgressFunc) *Bootstrapper {
	b.progress = progress
	return b
}

// WithOutput sets where user-facing messages are printed.
func (b *Bootstrapper) WithOutput(out io.Writer) *Bootstrapper {
	b.out = out
	return b
}

// OnTransition registers fn to be called after every state change.
func (b *Bootstrapper) OnTransition(fn func(from, to State)) {
	b.transitions = append(b.transitions, fn)
}

func (b *Bootstrapper) State() State {
	return b.state
}

func (b *Bootstrapper) InstallDir() string {
	return b.profile.InstallDir(b.installRoot)
}

func (b *Bootstrapper) InstallerPath() string {
	return b.profile.InstallerPath(b.dataDir)
}

// Run checks for an installation, installs when missing and launches the
// tool, blocking until it exits.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.state = NotInstalled

	if !b.CheckPresence() {
		b.printf("Tor browser installation not found. Installing tor browser.\n")
		if err := b.Install(ctx); err != nil {
			return err
		}
		b.printf("Successfully installed tor browser.\n\n")
	}

	return b.Launch(ctx)
}

// CheckPresence moves to Installed when the install directory exists.
func (b *Bootstrapper) CheckPresence() bool {
	dir := b.InstallDir()
	if !util.IsDir(dir) {
		log.Debug().Str("dir", dir).Msg("install directory not found")
		return false
	}
	log.Debug().Str("dir", dir).Msg("install directory found")
	return b.setState(Installed) == nil
}

// Install acquires the installer and runs it. The installer writes into a
// staging directory which is moved into place only after every step
// succeeded.
func (b *Bootstrapper) Install(ctx context.Context) error {
	installer, err := b.acquireInstaller(ctx)
	if err != nil {
		return err
	}

	if err := b.verifyInstaller(installer); err != nil {
		return err
	}

	if err := b.setState(Installing); err != nil {
		return err
	}

	dest := b.InstallDir()
	staging := dest + StagingSuffix
	if err := os.RemoveAll(staging); err != nil {
		return b.fail(errors.Install("failed to clean staging directory", err))
	}
	if err := util.PrepareDir(b.installRoot); err != nil {
		return b.fail(errors.Install("failed to create install root", err))
	}

	b.printf("\nPlease wait while tor browser is installing. This process can take up to several minutes.\n...\n")
	for _, step := range b.profile.InstallSteps(installer, staging, b.settings.RunInstallerSilent) {
		if err := b.runStep(ctx, step); err != nil {
			b.printf("Installation canceled.\n")
			return b.fail(err)
		}
	}

	if err := os.Rename(staging, dest); err != nil {
		b.printf("Installation canceled.\n")
		return b.fail(errors.Install("failed to move installation into place", err))
	}

	log.Info().Str("dir", dest).Str("size", util.GetDirSize(dest)).Msg("installation complete")
	b.printf("Installation complete.\n")
	return b.setState(Installed)
}

// Launch starts the installed tool and waits for it to exit. The tool's own
// exit code is logged, not returned.
func (b *Bootstrapper) Launch(ctx context.Context) error {
	if err := b.setState(Launching); err != nil {
		return err
	}

	argv := b.profile.LaunchCommand(b.InstallDir(), b.settings.LaunchPath(b.profile.Name))
	target := argv[len(argv)-1]
	if info, err := appver.New(target); err == nil {
		log.Info().Str("version", info.FullVersion).Msg("tor browser version")
	} else {
		log.Debug().Err(err).Str("path", target).Msg("read tor browser version failed")
	}

	b.printf("Starting tor browser...\n")
	code, err := b.runner.Run(ctx, argv)
	if err != nil {
		if serr := b.setState(LaunchFailed); serr != nil {
			return serr
		}
		return errors.LaunchFailed(target, err)
	}
	log.Debug().Int("code", code).Msg("tor browser exited")
	b.printf("tor browser closed.\n")

	return b.setState(Exited)
}

func (b *Bootstrapper) acquireInstaller(ctx context.Context) (string, error) {
	installer := b.InstallerPath()
	if util.IsFile(installer) {
		log.Info().Str("path", installer).Msg("using cached installer")
		return installer, nil
	}

	url, ok := b.settings.InstallerURL(b.profile.Name)
	if !ok {
		return "", errors.InstallerURLMissing(b.profile.Name)
	}

	b.printf("Tor browser installer not found. Downloading.\n")
	b.printf("Downloading %s\n", url)
	if err := b.fetcher.Fetch(ctx, url, installer, b.progress); err != nil {
		if errors.Is(err, errors.ErrTypeFetch) {
			return "", err
		}
		return "", errors.DownloadFailed(url, err)
	}
	b.printf("Download done.\n")

	return installer, nil
}

func (b *Bootstrapper) verifyInstaller(installer string) error {
	want := b.settings.InstallerChecksum(b.profile.Name)
	if want == "" {
		return nil
	}

	got, err := hashFile(installer)
	if err != nil {
		return errors.FileReadFailed(installer, err)
	}
	if !sameDigest(want, got) {
		// drop it so the next run downloads a fresh copy
		if err := os.Remove(installer); err != nil {
			log.Warn().Err(err).Str("path", installer).Msg("remove bad installer failed")
		}
		return errors.ChecksumMismatch(installer, want, got)
	}

	log.Debug().Str("sha256", got).Msg("installer checksum verified")
	return nil
}

func (b *Bootstrapper) runStep(ctx context.Context, step []string) error {
	if b.settings.InstallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.settings.InstallTimeout)
		defer cancel()
	}

	name := filepath.Base(step[0])
	log.Debug().Str("cmd", strings.Join(step, " ")).Msg("running installer step")
	code, err := b.runner.Run(ctx, step)
	if err != nil {
		return errors.Install(fmt.Sprintf("installer step %q failed", name), err)
	}
	if code != 0 {
		return errors.InstallerExited(name, code)
	}
	return nil
}

func (b *Bootstrapper) fail(err error) error {
	if serr := b.setState(Failed); serr != nil {
		log.Warn().Err(serr).Msg("unexpected state change")
	}
	return err
}

func (b *Bootstrapper) setState(to State) error {
	from := b.state
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return errors.Internal(fmt.Sprintf("invalid bootstrap transition %s -> %s", from, to), nil)
	}
	b.state = to
	log.Debug().Stringer("from", from).Stringer("to", to).Msg("bootstrap state changed")
	for _, fn := range b.transitions {
		fn(from, to)
	}
	return nil
}

func (b *Bootstrapper) printf(format string, args ...any) {
	fmt.Fprintf(b.out, format, args...)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
