// Package report prints the colored per-stage status lines of a run.
package report

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter writes one status line per pipeline event.
type Reporter struct {
	logger  *log.Logger
	verbose bool

	cyan   func(a ...interface{}) string
	yellow func(a ...interface{}) string
	red    func(a ...interface{}) string
	blue   func(a ...interface{}) string
	green  func(a ...interface{}) string
}

// New creates a Reporter writing to w. With noColor set, or when w is not a
// terminal file, lines are printed without escape codes. Otherwise the
// color package's own NO_COLOR and TERM checks apply.
func New(w io.Writer, noColor, verbose bool) *Reporter {
	plain := noColor || !isTerminal(w)
	sprint := func(attr color.Attribute) func(a ...interface{}) string {
		c := color.New(attr)
		if plain {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	return &Reporter{
		logger:  log.New(w, "", log.LstdFlags),
		verbose: verbose,
		cyan:    sprint(color.FgCyan),
		yellow:  sprint(color.FgYellow),
		red:     sprint(color.FgRed),
		blue:    sprint(color.FgBlue),
		green:   sprint(color.FgGreen),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Discard returns a Reporter that prints nothing.
func Discard() *Reporter {
	return New(io.Discard, true, false)
}

// Homepage reports homepage-stage events.
func (r *Reporter) Homepage(format string, args ...interface{}) {
	r.logger.Println(r.yellow(fmt.Sprintf(format, args...)))
}

// Robots reports robots.txt-stage events.
func (r *Reporter) Robots(format string, args ...interface{}) {
	r.logger.Println(r.blue(fmt.Sprintf(format, args...)))
}

// Sitemap reports a sitemap candidate being resolved.
func (r *Reporter) Sitemap(format string, args ...interface{}) {
	r.logger.Println(r.cyan(fmt.Sprintf(format, args...)))
}

// Success reports a stored sitemap.
func (r *Reporter) Success(format string, args ...interface{}) {
	r.logger.Println(r.green(fmt.Sprintf(format, args...)))
}

// Warn reports a recoverable condition.
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.logger.Println(r.yellow(fmt.Sprintf(format, args...)))
}

// Error reports a failed step.
func (r *Reporter) Error(format string, args ...interface{}) {
	r.logger.Println(r.red(fmt.Sprintf(format, args...)))
}

// Infof prints an uncolored line.
func (r *Reporter) Infof(format string, args ...interface{}) {
	r.logger.Printf(format, args...)
}

// Debugf prints only in verbose mode.
func (r *Reporter) Debugf(format string, args ...interface{}) {
	if r.verbose {
		r.logger.Printf(format, args...)
	}
}
