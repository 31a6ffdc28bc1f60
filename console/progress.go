// Package console implements progress reporting on terminal
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aptly-dev/pkgstats/pkgstats"
	"github.com/cheggaaa/pb"
	"github.com/wsxiaoys/terminal/color"
)

const (
	codePrint = iota
	codePrintStdErr
	codeProgress
	codeHideProgress
	codeStop
	codeFlush
	codeBarEnabled
	codeBarDisabled
)

type printTask struct {
	code    int
	message string
	reply   chan bool
}

// Progress is a progress displaying subroutine, it allows to show download progress
// mixed with progress bar
type Progress struct {
	stopped    chan bool
	queue      chan printTask
	bar        *pb.ProgressBar
	barShown   bool
	onTerminal bool
	stdout     io.Writer
	stderr     io.Writer
}

// Check interface
var (
	_ pkgstats.Progress = (*Progress)(nil)
)

// NewProgress creates new progress instance printing to stdout & stderr
func NewProgress() *Progress {
	return NewProgressWithWriters(os.Stdout, os.Stderr, RunningOnTerminal())
}

// NewProgressWithWriters creates progress instance with custom output,
// progress bar and colors are enabled only when onTerminal is set
func NewProgressWithWriters(stdout, stderr io.Writer, onTerminal bool) *Progress {
	return &Progress{
		stopped:    make(chan bool),
		queue:      make(chan printTask, 100),
		onTerminal: onTerminal,
		stdout:     stdout,
		stderr:     stderr,
	}
}

// Start makes progress start its work
func (p *Progress) Start() {
	go p.worker()
}

// Shutdown shuts down progress display
func (p *Progress) Shutdown() {
	p.ShutdownBar()
	p.queue <- printTask{code: codeStop}
	<-p.stopped
}

// Flush waits for all queued messages to be displayed
func (p *Progress) Flush() {
	ch := make(chan bool)
	p.queue <- printTask{code: codeFlush, reply: ch}
	<-ch
}

// InitBar starts progressbar for count bytes or count items
func (p *Progress) InitBar(count int64, isBytes bool) {
	if p.bar != nil {
		panic("bar already initialized")
	}
	if p.onTerminal {
		p.bar = pb.New(0)
		p.bar.Total = count
		p.bar.NotPrint = true
		p.bar.Callback = func(out string) {
			p.queue <- printTask{code: codeProgress, message: out}
		}

		if isBytes {
			p.bar.SetUnits(pb.U_BYTES)
			p.bar.ShowSpeed = true
		}

		p.queue <- printTask{code: codeBarEnabled}
		p.bar.Start()
	}
}

// ShutdownBar stops progress bar and hides it
func (p *Progress) ShutdownBar() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	p.queue <- printTask{code: codeBarDisabled}
	p.bar = nil
	p.queue <- printTask{code: codeHideProgress}
}

// SetBar sets current position for progress bar
func (p *Progress) SetBar(count int) {
	if p.bar != nil {
		p.bar.Set(count)
	}
}

// Printf does printf but in safe manner: not overwriting progress bar
func (p *Progress) Printf(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrint, message: fmt.Sprintf(msg, a...)}
}

// PrintfStdErr does printf but in safe manner to stderr
func (p *Progress) PrintfStdErr(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrintStdErr, message: fmt.Sprintf(msg, a...)}
}

// ColoredPrintf does printf in colored way + newline
func (p *Progress) ColoredPrintf(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrint, message: p.colorize(msg, a...)}
}

// ColoredPrintfStdErr does printf in colored way + newline to stderr
func (p *Progress) ColoredPrintfStdErr(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrintStdErr, message: p.colorize(msg, a...)}
}

func (p *Progress) colorize(msg string, a ...interface{}) string {
	if p.onTerminal {
		return color.Sprintf(msg, a...) + "\n"
	}
	return fmt.Sprintf(stripColorMarks(msg)+"\n", a...)
}

// stripColorMarks removes @x and @{xx} color marks, @@ stays as literal @
func stripColorMarks(msg string) string {
	var inColorMark, inCurly bool

	return strings.Map(func(r rune) rune {
		if inColorMark {
			if inCurly {
				if r == '}' {
					inCurly = false
					inColorMark = false
				}
				return -1
			}

			switch r {
			case '{':
				inCurly = true
				return -1
			case '@':
				inColorMark = false
				return '@'
			}

			inColorMark = false
			return -1
		}

		if r == '@' {
			inColorMark = true
			return -1
		}

		return r
	}, msg)
}

func (p *Progress) clearBar() {
	if p.barShown {
		fmt.Fprint(p.stdout, "\r\033[2K")
		p.barShown = false
	}
}

func (p *Progress) worker() {
	hasBar := false

	for {
		task := <-p.queue
		switch task.code {
		case codeBarEnabled:
			hasBar = true
		case codeBarDisabled:
			hasBar = false
		case codePrint:
			p.clearBar()
			fmt.Fprint(p.stdout, task.message)
		case codePrintStdErr:
			p.clearBar()
			fmt.Fprint(p.stderr, task.message)
		case codeProgress:
			if hasBar {
				fmt.Fprint(p.stdout, "\r"+task.message)
				p.barShown = true
			}
		case codeHideProgress:
			p.clearBar()
		case codeFlush:
			task.reply <- true
		case codeStop:
			p.stopped <- true
			return
		}
	}
}
