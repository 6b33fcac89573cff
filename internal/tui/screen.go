package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ClearScreen = "\033[2J"
	HideCursor  = "\033[?25l"
	ShowCursor  = "\033[?25h"
	ResetAttrs  = "\033[0m"

	// RestoreSequence is always the last thing a Screen writes.
	RestoreSequence = ResetAttrs + ShowCursor
)

// Screen is the hidden-cursor terminal mode held for the length of a show.
// Release must run on every exit path; it is safe to call more than once.
type Screen struct {
	out      io.Writer
	released bool
}

// Acquire clears the terminal and hides the cursor.
func Acquire(out io.Writer) (*Screen, error) {
	s := &Screen{out: out}
	if _, err := io.WriteString(out, ClearScreen+HideCursor); err != nil {
		s.released = true
		return nil, err
	}
	return s, nil
}

// Release resets colour attributes and shows the cursor again.
func (s *Screen) Release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true
	_, err := io.WriteString(s.out, "\n"+RestoreSequence)
	return err
}

// TerminalSize reports the size of the terminal attached to stdout.
func TerminalSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
