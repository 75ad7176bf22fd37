package cli

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// stdoutIsTerminal is swapped in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// scanSpinner starts a spinner for long-running filesystem scans and
// returns it, or nil when stdout is not a terminal (piped output gets no
// animation). The spinner writes to stderr so command output stays clean.
func scanSpinner(msg string) *spinner.Spinner {
	if !stdoutIsTerminal() {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " " + msg
	s.Start()
	return s
}
