package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Indicator reports progress of one operation at a time.
type Indicator interface {
	Start(message string)
	Stop(ok bool)
}

// Spinner animates on a terminal and prints a final status line when stopped.
type Spinner struct {
	spinner *spinner.Spinner
	symbols ProgressSymbols
	out     io.Writer
	message string
}

// NewSpinner creates a spinner writing to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(out),
		spinner.WithHiddenCursor(caps.IsTTY),
	)
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	return &Spinner{spinner: s, symbols: symbols, out: out}
}

// Start shows message next to the animation.
func (s *Spinner) Start(message string) {
	s.message = message
	s.spinner.Suffix = " " + message
	s.spinner.Start()
}

// Stop ends the animation and leaves a ✓ or ✗ line behind.
func (s *Spinner) Stop(ok bool) {
	s.spinner.Stop()
	symbol := s.symbols.Checkmark
	if !ok {
		symbol = s.symbols.Failure
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, s.message)
}

// Nop is an Indicator that shows nothing.
type Nop struct{}

// Start does nothing.
func (Nop) Start(string) {}

// Stop does nothing.
func (Nop) Stop(bool) {}

// New returns a Spinner on terminals and Nop elsewhere, so piped output
// stays clean.
func New(out io.Writer, caps TerminalCapabilities) Indicator {
	if !caps.IsTTY {
		return Nop{}
	}
	return NewSpinner(out, caps)
}
