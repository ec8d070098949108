package runner

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/freedom/internal/errors"
)

// Runner starts an external command and waits for it to exit.
type Runner interface {
	// Run returns the exit code of the command. err is set only when the
	// command could not be started or did not run to completion.
	Run(ctx context.Context, argv []string) (int, error)
}

// ExecRunner runs commands with os/exec. The child shares the caller's
// standard streams by default so installers can prompt (sudo, UAC).
type ExecRunner struct {
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func New() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run blocks until the command exits. There is no timeout unless ctx has one.
func (r *ExecRunner) Run(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 || argv[0] == "" {
		return -1, errors.ErrInvalidArg("argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	if len(r.Env) != 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	log.Debug().Str("cmd", strings.Join(argv, " ")).Msg("starting process")
	if err := cmd.Start(); err != nil {
		return -1, errors.RunCmdFailed(err)
	}
	log.Debug().Int("pid", cmd.Process.Pid).Msg("process started")

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return exitErr.ExitCode(), errors.RunCmdFailed(ctxErr)
		}
		return exitErr.ExitCode(), nil
	}
	return -1, errors.RunCmdFailed(err)
}
