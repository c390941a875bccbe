// Package progress prints an animated status line while a single import
// call runs.
package progress

import (
	"fmt"
	"time"

	"github.com/efritz/pentimento"

	"github.com/managed-module/mmimport/internal/util"
)

// Verbosity determines how much detail WithProgress prints.
type Verbosity int

const (
	NoOutput Verbosity = iota
	DefaultOutput
	VerboseOutput
)

// Options configures WithProgress.
type Options struct {
	Verbosity      Verbosity
	ShowAnimations bool
}

var ticker = pentimento.NewAnimatedString([]string{
	"⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏", "⠋", "⠙", "⠹",
}, time.Second/4)

const successPrefix = "✔"

// WithProgress runs fn, printing an animated spinner next to name while it
// runs (or a static start line, when animations are disabled), then
// reports the elapsed time at VerboseOutput.
func WithProgress(name string, fn func(), opts Options) {
	if opts.Verbosity == NoOutput {
		fn()
		return
	}

	if !opts.ShowAnimations {
		withStatic(name, opts.Verbosity, fn)
		return
	}

	start := time.Now()
	fmt.Printf("%s %s... ", ticker, name)

	_ = pentimento.PrintProgress(func(printer *pentimento.Printer) error {
		defer func() { _ = printer.Reset() }()
		done := make(chan struct{})
		go func() {
			fn()
			close(done)
		}()
		for {
			select {
			case <-done:
				return nil
			case <-time.After(time.Second / 4):
				content := pentimento.NewContent()
				content.AddLine("%s %s...", ticker, name)
				printer.WriteContent(content)
			}
		}
	})

	if opts.Verbosity > DefaultOutput {
		fmt.Printf("%s %s... Done (%s)\n", successPrefix, name, util.HumanElapsed(start))
	} else {
		fmt.Printf("%s %s... Done\n", successPrefix, name)
	}
}

func withStatic(name string, verbosity Verbosity, fn func()) {
	start := time.Now()
	fmt.Printf("%s\n", name)
	fn()

	if verbosity > DefaultOutput {
		fmt.Printf("Finished in %s.\n\n", util.HumanElapsed(start))
	}
}
