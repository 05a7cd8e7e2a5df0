// Package console provides the blocking console input used by firmware
// stdio: single characters read from a terminal, with carriage returns
// turned into newlines.
package console

import (
	"io"
)

// Standard stream descriptors.
const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2
)

// TTY is a terminal that yields one character per call, blocking until one
// is available.
type TTY interface {
	Getc() (c byte, err error)
}

// Read fills p from tty, one character at a time. A carriage return is
// stored as a newline, and a newline ends the read. Only Stdin is supported.
func Read(tty TTY, fd int, p []byte) (n int, err error) {
	if fd != Stdin {
		err = ErrNotSupported
		return
	}

	for n < len(p) {
		var c byte
		c, err = tty.Getc()
		if err != nil {
			return
		}

		if c == '\r' {
			c = '\n'
		}

		p[n] = c
		n++

		if c == '\n' {
			return
		}
	}

	return
}

// Reader is an io.Reader over the standard input of a TTY.
type Reader struct {
	TTY TTY
}

var _ io.Reader = (*Reader)(nil)

// NewReader returns a line oriented reader over tty.
func NewReader(tty TTY) *Reader {
	return &Reader{TTY: tty}
}

// Read reads up to the next newline.
func (rd *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}

	return Read(rd.TTY, Stdin, p)
}
