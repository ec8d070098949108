package fetch

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/sjzar/freedom/pkg/util"
)

const (
	BarWidth    = 50
	LogStepPct  = 10
	unknownSize = -1
)

// ProgressBar renders download progress. On a terminal it redraws a bar in
// place; otherwise it logs every LogStepPct percent.
type ProgressBar struct {
	out      io.Writer
	tty      bool
	bar      progress.Model
	lastStep int
}

var sizeStyle = lipgloss.NewStyle().Faint(true)

func NewProgressBar(out io.Writer, tty bool) *ProgressBar {
	return &ProgressBar{
		out:      out,
		tty:      tty,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(BarWidth)),
		lastStep: -1,
	}
}

// NewTerminalProgressBar draws on f when it is a terminal.
func NewTerminalProgressBar(f *os.File) *ProgressBar {
	return NewProgressBar(f, term.IsTerminal(int(f.Fd())))
}

// Update is a ProgressFunc.
func (p *ProgressBar) Update(done, total int64) {
	if total == unknownSize || total <= 0 {
		if p.tty {
			fmt.Fprintf(p.out, "\rDownloaded %s", sizeStyle.Render(util.ByteCountSI(done)))
			return
		}
		log.Debug().Str("downloaded", util.ByteCountSI(done)).Msg("download progress")
		return
	}

	pct := int(done * 100 / total)
	if p.tty {
		size := fmt.Sprintf("%s / %s", util.ByteCountSI(done), util.ByteCountSI(total))
		fmt.Fprintf(p.out, "\r%s %s", p.bar.ViewAs(float64(done)/float64(total)), sizeStyle.Render(size))
		if done >= total {
			fmt.Fprintln(p.out)
		}
		return
	}

	step := pct / LogStepPct
	if step == p.lastStep {
		return
	}
	p.lastStep = step
	log.Info().Msgf("downloaded %d%% (%s / %s)", pct, util.ByteCountSI(done), util.ByteCountSI(total))
}
