package console

import (
	"bufio"
	"io"
)

// Stream is a TTY over a byte stream.
type Stream struct {
	reader io.ByteReader
}

var _ TTY = (*Stream)(nil)

// NewStream returns a TTY reading from r.
func NewStream(r io.Reader) *Stream {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Stream{reader: br}
}

// Getc returns the next byte of the stream.
func (st *Stream) Getc() (byte, error) {
	return st.reader.ReadByte()
}
