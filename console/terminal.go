package console

import (
	"github.com/pkg/term"
)

// Terminal is a TTY over a terminal device in raw mode, so that characters
// arrive as typed and carriage returns are not translated by the line
// discipline.
type Terminal struct {
	term *term.Term
}

var _ TTY = (*Terminal)(nil)

// OpenTerminal opens a terminal device, such as /dev/tty, in raw mode.
func OpenTerminal(name string) (tm *Terminal, err error) {
	t, err := term.Open(name, term.RawMode)
	if err != nil {
		return
	}

	tm = &Terminal{term: t}

	return
}

// Getc blocks until one character is read.
func (tm *Terminal) Getc() (c byte, err error) {
	var one [1]byte
	for {
		var n int
		n, err = tm.term.Read(one[:])
		if err != nil {
			return
		}
		if n == 1 {
			c = one[0]
			return
		}
	}
}

// Write writes to the terminal.
func (tm *Terminal) Write(p []byte) (int, error) {
	return tm.term.Write(p)
}

// Close restores the terminal mode and closes the device.
func (tm *Terminal) Close() (err error) {
	err = tm.term.Restore()
	cerr := tm.term.Close()
	if err == nil {
		err = cerr
	}

	return
}
